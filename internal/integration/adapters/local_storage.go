// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ErrInvalidAttachmentKey is returned for keys that escape the storage root.
var ErrInvalidAttachmentKey = errors.New("invalid attachment key")

// localStorage stores attachments on the local file system under
// <root>/<user id>/<transaction id>/<file name>.
type localStorage struct {
	root string
}

// NewLocalStorage creates an attachment storage rooted at dir.
func NewLocalStorage(dir string) (adapter.AttachmentStorage, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attachment dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create attachment dir: %w", err)
	}
	return &localStorage{root: root}, nil
}

// Save writes the content and returns a slash-separated key relative to the root.
func (s *localStorage) Save(_ context.Context, userID, transactionID uuid.UUID, fileName string, content io.Reader) (string, error) {
	key := path.Join(userID.String(), transactionID.String(), SanitizeFileName(fileName))
	full, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("failed to create attachment dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close attachment: %w", err)
	}

	return key, nil
}

// Open returns the stored file.
func (s *localStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete removes the stored file and its transaction directory when empty.
func (s *localStorage) Delete(_ context.Context, key string) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	// Fails harmlessly when the directory still holds files
	_ = os.Remove(filepath.Dir(full))
	return nil
}

// DeleteAllForUser removes the user's directory.
func (s *localStorage) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	return os.RemoveAll(filepath.Join(s.root, userID.String()))
}

func (s *localStorage) resolve(key string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", ErrInvalidAttachmentKey
	}
	return full, nil
}

// SanitizeFileName strips directories and unsafe characters from an uploaded name.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "attachment"
	}
	if len(name) > 200 {
		name = name[len(name)-200:]
	}
	return name
}
