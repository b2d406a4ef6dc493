// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Code       string   `json:"code,omitempty"`
	Details    string   `json:"details,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// FileResponse describes an uploaded file.
type FileResponse struct {
	Name     string    `json:"name"`
	Digest   string    `json:"digest"`
	Size     int       `json:"size"`
	LoadedAt time.Time `json:"loaded_at"`
}

// ToFileResponse converts session file info to a FileResponse DTO.
func ToFileResponse(f *session.FileInfo) *FileResponse {
	if f == nil {
		return nil
	}
	return &FileResponse{
		Name:     f.Name,
		Digest:   f.Digest,
		Size:     f.Size,
		LoadedAt: f.LoadedAt,
	}
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func moneyList(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = money(v)
	}
	return out
}

func optionalMoney(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := money(*d)
	return &v
}
