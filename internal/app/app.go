package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basera-backend/internal/db"
	"basera-backend/internal/handlers"
	"basera-backend/internal/models"
	"basera-backend/internal/services"
	"basera-backend/internal/storage"
	"basera-backend/internal/utils"
	"basera-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lmittmann/tint"
)

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		slog.Warn(".env file not found")
	}

	// Structured logging for everything outside the request path
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.DateTime,
	})))

	// Init DB
	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "baseradb") + "?sslmode=disable"
	}

	if err := db.InitDB(connString); err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	if err := db.EnsureSchema(context.Background()); err != nil {
		slog.Error("failed to bootstrap schema", "err", err)
		os.Exit(1)
	}

	// Services
	userService := services.NewUserService()
	profileService := services.NewProfileService()
	listingService := services.NewListingService()
	bookingService := services.NewBookingService()
	chatService := services.NewChatService()
	favoriteService := services.NewFavoriteService()

	// Object storage for listing images, served under /uploads
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads")
	store := storage.New(uploadDir, utils.GetEnv("BASE_URL", ""))
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		slog.Warn("failed to create upload dir", "err", err)
	}

	// Fiber App
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Static("/uploads", uploadDir)

	// Routes
	api := app.Group("/api")

	// Public Routes
	api.Post("/register", func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		req, ferr := validation.Signup(req)
		if ferr != nil {
			return c.Status(400).JSON(fiber.Map{"error": ferr.Message, "field": ferr.Field})
		}
		user, err := userService.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrUserExists) {
				return c.Status(400).JSON(fiber.Map{"error": "email already registered"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(user)
	})

	api.Post("/login", func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		req, ferr := validation.Login(req)
		if ferr != nil {
			return c.Status(400).JSON(fiber.Map{"error": ferr.Message, "field": ferr.Field})
		}
		res, err := userService.Login(c.Context(), req)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(res)
	})

	// Refresh token endpoint
	api.Post("/refresh", func(c *fiber.Ctx) error {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if body.RefreshToken == "" {
			return c.Status(400).JSON(fiber.Map{"error": "refresh_token required"})
		}

		claims, err := services.ValidateRefreshToken(body.RefreshToken)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "invalid refresh token"})
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return c.Status(401).JSON(fiber.Map{"error": "invalid token claims"})
		}
		email, _ := claims["email"].(string)

		access, err := services.GenerateJWT(userID, email)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to generate access token"})
		}
		refresh, err := services.GenerateRefreshToken(userID, email)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to generate refresh token"})
		}

		return c.JSON(fiber.Map{
			"access_token":  access,
			"refresh_token": refresh,
		})
	})

	// Directory and detail are public; auth only widens what they show
	api.Get("/listings", handlers.OptionalAuthMiddleware, handlers.ListListingsHandler(listingService))
	api.Get("/listings/:id", handlers.OptionalAuthMiddleware, handlers.GetListingHandler(listingService, favoriteService))

	// Booking wizard: opening and the early steps work anonymously,
	// advancing past date selection requires sign-in
	wizard := api.Group("/bookings/wizard", handlers.OptionalAuthMiddleware)
	wizard.Post("/", handlers.OpenWizardHandler(listingService))
	wizard.Post("/:id/type", handlers.SelectTypeHandler())
	wizard.Post("/:id/dates", handlers.SetDatesHandler())
	wizard.Post("/:id/info", handlers.SetInfoHandler())
	wizard.Post("/:id/pay", handlers.PayHandler(bookingService))
	wizard.Post("/:id/back", handlers.BackHandler())
	wizard.Delete("/:id", handlers.CloseWizardHandler())

	// Protected Routes
	protected := api.Group("/", handlers.AuthMiddleware)

	protected.Post("/listings", handlers.CreateListingHandler(listingService, store))
	protected.Get("/bookings", handlers.MyBookingsHandler(bookingService))

	protected.Get("/conversations", handlers.ConversationsHandler(chatService))
	protected.Get("/chat/:listingID/:otherUserID", handlers.ChatHandler(chatService, listingService))
	protected.Post("/messages", handlers.SendMessageHandler(chatService))

	protected.Get("/profile", handlers.GetProfileHandler(profileService))
	protected.Put("/profile", handlers.UpdateProfileHandler(profileService))
	protected.Get("/profile/listings", handlers.MyListingsHandler(listingService))

	protected.Get("/favorites", handlers.ListFavoritesHandler(favoriteService))
	protected.Put("/favorites/:listingID", handlers.AddFavoriteHandler(favoriteService))
	protected.Delete("/favorites/:listingID", handlers.RemoveFavoriteHandler(favoriteService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// WebSocket Route
	// Note: Middleware order matters. AuthMiddleware checks token.
	// WSUpgradeMiddleware checks if it's a WS request.
	app.Use("/ws", handlers.WSUpgradeMiddleware)
	app.Use("/ws", handlers.AuthMiddleware)
	app.Get("/ws", handlers.WebSocketHandler(chatService))

	// Start Server
	port := utils.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			slog.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	slog.Info("gracefully shutting down...")
	_ = app.Shutdown()
	slog.Info("server shutdown complete")
}
