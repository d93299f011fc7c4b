// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AttachmentStorage defines the interface for storing transaction attachments.
type AttachmentStorage interface {
	// Save stores the content and returns the storage key.
	Save(ctx context.Context, userID, transactionID uuid.UUID, fileName string, content io.Reader) (string, error)

	// Open returns a reader for the stored content.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored content. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// DeleteAllForUser removes every attachment of a user.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
