// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	"github.com/budget-dashboard/backend/internal/integration/persistence/model"
)

// uploadRepository implements the adapter.UploadRepository interface.
type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new upload repository instance.
func NewUploadRepository(db *gorm.DB) adapter.UploadRepository {
	return &uploadRepository{
		db: db,
	}
}

// Create records an upload.
func (r *uploadRepository) Create(ctx context.Context, upload *entity.Upload) error {
	uploadModel := model.UploadFromEntity(upload)
	result := r.db.WithContext(ctx).Create(uploadModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ListBySession retrieves a session's uploads, newest first.
func (r *uploadRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Upload, error) {
	var uploadModels []model.UploadModel
	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&uploadModels)
	if result.Error != nil {
		return nil, result.Error
	}

	uploads := make([]*entity.Upload, len(uploadModels))
	for i, um := range uploadModels {
		uploads[i] = um.ToEntity()
	}
	return uploads, nil
}

// DeleteBySession removes every upload of a session.
func (r *uploadRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.UploadModel{}, "session_id = ?", sessionID)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
