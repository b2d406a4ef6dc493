// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// UploadModel represents the uploads table in the database.
type UploadModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	FileName  string    `gorm:"type:varchar(255);not null"`
	Digest    string    `gorm:"type:char(64);not null;index"`
	SizeBytes int       `gorm:"not null"`
	RowCount  int       `gorm:"not null;default:0"`
	CacheHit  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the UploadModel.
func (UploadModel) TableName() string {
	return "uploads"
}

// ToEntity converts an UploadModel to a domain Upload entity.
func (m *UploadModel) ToEntity() *entity.Upload {
	return &entity.Upload{
		ID:        m.ID,
		SessionID: m.SessionID,
		Kind:      entity.UploadKind(m.Kind),
		FileName:  m.FileName,
		Digest:    m.Digest,
		SizeBytes: m.SizeBytes,
		RowCount:  m.RowCount,
		CacheHit:  m.CacheHit,
		CreatedAt: m.CreatedAt,
	}
}

// UploadFromEntity creates an UploadModel from a domain Upload entity.
func UploadFromEntity(upload *entity.Upload) *UploadModel {
	return &UploadModel{
		ID:        upload.ID,
		SessionID: upload.SessionID,
		Kind:      string(upload.Kind),
		FileName:  upload.FileName,
		Digest:    upload.Digest,
		SizeBytes: upload.SizeBytes,
		RowCount:  upload.RowCount,
		CacheHit:  upload.CacheHit,
		CreatedAt: upload.CreatedAt,
	}
}
