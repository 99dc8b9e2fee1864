package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkordes/travelbook/internal/domain"
)

// File stores one session token at a fixed path, readable only by its owner.
type File struct {
	path string
}

// NewFile returns a File at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Save writes token, replacing any previous session.
func (f *File) Save(token string) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session.File.Save: %w", err)
		}
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("session.File.Save: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(f.path, 0o600); err != nil {
		return fmt.Errorf("session.File.Save: %w", err)
	}
	return nil
}

// Load returns the stored token. A missing file is domain.ErrUnauthenticated.
func (f *File) Load() (string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("session.File.Load: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}

// Remove deletes the stored token. Removing a missing file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session.File.Remove: %w", err)
	}
	return nil
}
