// Package storage is a bucketed object store on local disk. Uploaded blobs
// are written under a caller-chosen key and served back over HTTP as
// /uploads/<bucket>/<key>.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	root    string
	baseURL string
}

// New creates a store rooted at dir. baseURL is prefixed to public URLs
// when set (e.g. http://host:port), otherwise URLs are host-relative.
func New(dir, baseURL string) *Store {
	return &Store{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root returns the directory served as /uploads.
func (s *Store) Root() string {
	return s.root
}

// Put writes a blob under bucket/key, creating directories as needed.
// Keys may contain slashes (per-user namespacing).
func (s *Store) Put(bucket, key string, r io.Reader) error {
	dest := filepath.Join(s.root, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dest)
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

// PublicURL returns the URL a previously uploaded key is served from.
func (s *Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, key)
}

// Remove deletes a stored blob. Used to roll back partial uploads.
func (s *Store) Remove(bucket, key string) error {
	return os.Remove(filepath.Join(s.root, bucket, filepath.FromSlash(key)))
}
