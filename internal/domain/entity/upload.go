package entity

import (
	"time"

	"github.com/google/uuid"
)

// UploadKind identifies what a session upload contained.
type UploadKind string

const (
	UploadKindBudget  UploadKind = "budget"
	UploadKindActuals UploadKind = "actuals"
)

// Upload records metadata about a file loaded into a session. File contents are
// never stored.
type Upload struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Kind      UploadKind
	FileName  string
	Digest    string
	SizeBytes int
	RowCount  int
	CacheHit  bool
	CreatedAt time.Time
}

// NewUpload creates a new Upload record.
func NewUpload(sessionID uuid.UUID, kind UploadKind, fileName, digest string, sizeBytes, rowCount int) *Upload {
	return &Upload{
		ID:        uuid.New(),
		SessionID: sessionID,
		Kind:      kind,
		FileName:  fileName,
		Digest:    digest,
		SizeBytes: sizeBytes,
		RowCount:  rowCount,
		CreatedAt: time.Now().UTC(),
	}
}
