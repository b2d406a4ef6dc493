package dto

import (
	"time"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// CreateSessionResponse represents the response for session creation.
type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse represents the state of a session.
type SessionResponse struct {
	SessionID     string           `json:"session_id"`
	CreatedAt     time.Time        `json:"created_at"`
	LastAccess    time.Time        `json:"last_access"`
	BudgetFile    *FileResponse    `json:"budget_file"`
	ActualsFile   *FileResponse    `json:"actuals_file"`
	BudgetVersion int              `json:"budget_version"`
	EditorState   string           `json:"editor_state,omitempty"`
	Periods       []string         `json:"periods"`
	Settings      SettingsResponse `json:"settings"`
}

// UploadResponse represents one entry of the upload history.
type UploadResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	FileName  string    `json:"file_name"`
	Digest    string    `json:"digest"`
	SizeBytes int       `json:"size_bytes"`
	RowCount  int       `json:"row_count"`
	CacheHit  bool      `json:"cache_hit"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadListResponse represents the upload history of a session.
type UploadListResponse struct {
	Uploads []UploadResponse `json:"uploads"`
}

// ToCreateSessionResponse converts a CreateSessionOutput to its DTO.
func ToCreateSessionResponse(output *session.CreateSessionOutput) CreateSessionResponse {
	return CreateSessionResponse{
		SessionID: output.SessionID.String(),
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	}
}

// ToSessionResponse converts a session snapshot to a SessionResponse DTO.
func ToSessionResponse(state *session.State) SessionResponse {
	settings := ToSettingsResponse(state.Settings, state.Periods)
	return SessionResponse{
		SessionID:     state.ID.String(),
		CreatedAt:     state.CreatedAt,
		LastAccess:    state.LastAccess,
		BudgetFile:    ToFileResponse(state.BudgetFile),
		ActualsFile:   ToFileResponse(state.ActualsFile),
		BudgetVersion: state.BudgetVersion,
		EditorState:   string(state.EditorState),
		Periods:       state.Periods,
		Settings:      settings,
	}
}

// ToUploadListResponse converts upload records to an UploadListResponse DTO.
func ToUploadListResponse(uploads []*entity.Upload) UploadListResponse {
	response := UploadListResponse{Uploads: make([]UploadResponse, len(uploads))}
	for i, u := range uploads {
		response.Uploads[i] = UploadResponse{
			ID:        u.ID.String(),
			Kind:      string(u.Kind),
			FileName:  u.FileName,
			Digest:    u.Digest,
			SizeBytes: u.SizeBytes,
			RowCount:  u.RowCount,
			CacheHit:  u.CacheHit,
			CreatedAt: u.CreatedAt,
		}
	}
	return response
}
