package main

import "basera-backend/internal/app"

func main() {
	app.Run()
}
