// Package storage keeps receipt uploads on the local filesystem under a
// per-user directory, with generated collision-free filenames.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
}

// ReceiptStore stores receipt files under baseDir/<user_id>/<generated name>
type ReceiptStore struct {
	baseDir string
}

// NewReceiptStore creates the base directory and returns the store
func NewReceiptStore(baseDir string) (*ReceiptStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &ReceiptStore{baseDir: baseDir}, nil
}

// AllowedFile reports whether the original filename has a permitted extension
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes an uploaded receipt and returns its store filename, which is
// always of the form "<user_id>/<timestamp>_<uuid>.<ext>".
func (s *ReceiptStore) Save(userID, originalFilename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q not allowed", ext)
	}

	userDir := filepath.Join(s.baseDir, userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), uuid.New().String(), ext)
	path := filepath.Join(userDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}

	return filepath.ToSlash(filepath.Join(userID, name)), nil
}

// Path resolves a store filename to an absolute path, rejecting names that
// escape the base directory
func (s *ReceiptStore) Path(filename string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(filename))

	cleanBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", err
	}
	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid receipt filename %q", filename)
	}

	if _, err := os.Stat(cleanPath); err != nil {
		return "", err
	}
	return cleanPath, nil
}

// Delete removes a stored receipt
func (s *ReceiptStore) Delete(filename string) error {
	path, err := s.Path(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// CleanupUser removes every receipt belonging to a user
func (s *ReceiptStore) CleanupUser(userID string) error {
	return os.RemoveAll(filepath.Join(s.baseDir, userID))
}
