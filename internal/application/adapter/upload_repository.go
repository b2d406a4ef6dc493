package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// UploadRepository defines the interface for the upload history store.
type UploadRepository interface {
	// Create records an upload.
	Create(ctx context.Context, upload *entity.Upload) error

	// ListBySession returns a session's uploads, newest first.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Upload, error)

	// DeleteBySession removes every upload of a session.
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

// SpendingTableCache stores parsed spending exports keyed by content digest so a
// re-upload of the same file skips parsing.
type SpendingTableCache interface {
	// Get returns the cached table, or nil when the digest is unknown.
	Get(ctx context.Context, digest string) (*entity.SpendingTable, error)

	// Set stores a parsed table.
	Set(ctx context.Context, digest string, table *entity.SpendingTable) error
}
