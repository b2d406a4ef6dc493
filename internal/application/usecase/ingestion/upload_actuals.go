// Package ingestion contains use cases that load actual-spending exports.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// UploadActualsInput represents the input for a spending export upload.
type UploadActualsInput struct {
	SessionID uuid.UUID
	FileName  string
	Data      []byte
	Reload    bool
}

// UploadActualsOutput represents the output of a spending export upload.
type UploadActualsOutput struct {
	Loaded   bool
	CacheHit bool
	File     session.FileInfo
	Table    *entity.SpendingTable
}

// UploadActualsUseCase parses a spending export and attaches it to a session.
type UploadActualsUseCase struct {
	manager    *session.Manager
	reader     adapter.SpendingTableReader
	cache      adapter.SpendingTableCache
	uploadRepo adapter.UploadRepository
	maxBytes   int64
}

// NewUploadActualsUseCase creates a new UploadActualsUseCase instance. A
// non-positive maxBytes disables the size check.
func NewUploadActualsUseCase(
	manager *session.Manager,
	reader adapter.SpendingTableReader,
	cache adapter.SpendingTableCache,
	uploadRepo adapter.UploadRepository,
	maxBytes int64,
) *UploadActualsUseCase {
	return &UploadActualsUseCase{
		manager:    manager,
		reader:     reader,
		cache:      cache,
		uploadRepo: uploadRepo,
		maxBytes:   maxBytes,
	}
}

// Execute performs the upload. Re-uploading the loaded file is a no-op unless
// Reload is set; a file parsed before in any session is served from the cache.
func (uc *UploadActualsUseCase) Execute(ctx context.Context, input UploadActualsInput) (*UploadActualsOutput, error) {
	if len(input.Data) == 0 {
		return nil, domainerror.NewIngestionError(domainerror.ErrCodeMissingFile, "no file was uploaded", domainerror.ErrEmptyExport)
	}
	if uc.maxBytes > 0 && int64(len(input.Data)) > uc.maxBytes {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeFileTooLarge,
			fmt.Sprintf("file is %d bytes, the limit is %d", len(input.Data), uc.maxBytes),
			domainerror.ErrFileTooLarge,
		)
	}
	// Checked before the cache, which is keyed by content only.
	if !uc.reader.Supports(input.FileName) {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeUnsupportedFileType,
			fmt.Sprintf("unsupported spending export %q", input.FileName),
			domainerror.ErrUnsupportedFileType,
		)
	}

	s, err := uc.manager.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	digest := session.Digest(input.Data)
	if s.IsCurrentActuals(digest) && !input.Reload {
		state := s.Snapshot()
		table, _ := s.Actuals()
		return &UploadActualsOutput{
			Loaded: false,
			File:   *state.ActualsFile,
			Table:  table,
		}, nil
	}

	table, cacheHit := uc.fromCache(ctx, s.ID, digest)
	if table == nil {
		table, err = uc.reader.Read(input.FileName, input.Data)
		if err != nil {
			return nil, err
		}
		if err := uc.cache.Set(ctx, digest, table); err != nil {
			slog.Warn("Failed to cache spending table", "session_id", s.ID, "error", err)
		}
	}

	file := session.FileInfo{
		Name:     input.FileName,
		Digest:   digest,
		Size:     len(input.Data),
		LoadedAt: time.Now().UTC(),
	}
	s.SetActuals(table, file)

	upload := entity.NewUpload(s.ID, entity.UploadKindActuals, file.Name, digest, file.Size, len(table.Rows))
	upload.CacheHit = cacheHit
	if err := uc.uploadRepo.Create(ctx, upload); err != nil {
		slog.Warn("Failed to record spending upload", "session_id", s.ID, "error", err)
	}

	slog.Info("Spending export loaded",
		"session_id", s.ID,
		"file", file.Name,
		"rows", len(table.Rows),
		"periods", table.PeriodCount(),
		"cache_hit", cacheHit,
	)

	return &UploadActualsOutput{
		Loaded:   true,
		CacheHit: cacheHit,
		File:     file,
		Table:    table,
	}, nil
}

func (uc *UploadActualsUseCase) fromCache(ctx context.Context, sessionID uuid.UUID, digest string) (*entity.SpendingTable, bool) {
	table, err := uc.cache.Get(ctx, digest)
	if err != nil {
		slog.Warn("Spending cache lookup failed", "session_id", sessionID, "error", err)
		return nil, false
	}
	return table, table != nil
}
