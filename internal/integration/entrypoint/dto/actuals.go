package dto

import (
	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// SpendingRowResponse represents one row of the actual-spending table.
type SpendingRowResponse struct {
	Category string    `json:"category"`
	Depth    int       `json:"depth"`
	Values   []float64 `json:"values"`
	Total    float64   `json:"total"`
}

// ActualsResponse represents the actual-spending table.
type ActualsResponse struct {
	File    *FileResponse         `json:"file,omitempty"`
	Periods []string              `json:"periods"`
	Rows    []SpendingRowResponse `json:"rows"`
}

// UploadActualsResponse represents the result of a spending export upload.
type UploadActualsResponse struct {
	Loaded   bool          `json:"loaded"`
	CacheHit bool          `json:"cache_hit"`
	File     *FileResponse `json:"file"`
	Periods  []string      `json:"periods"`
	RowCount int           `json:"row_count"`
}

// ToActualsResponse converts a spending table to its DTO.
func ToActualsResponse(table *entity.SpendingTable, file *FileResponse) ActualsResponse {
	response := ActualsResponse{
		File:    file,
		Periods: table.Periods,
		Rows:    make([]SpendingRowResponse, len(table.Rows)),
	}
	last := table.PeriodCount() - 1
	for i, r := range table.Rows {
		response.Rows[i] = SpendingRowResponse{
			Category: r.Name,
			Depth:    r.Depth,
			Values:   moneyList(r.Values),
			Total:    money(r.RowTotal(0, last)),
		}
	}
	return response
}

// ToUploadActualsResponse builds the upload result DTO.
func ToUploadActualsResponse(loaded, cacheHit bool, table *entity.SpendingTable, file *FileResponse) UploadActualsResponse {
	return UploadActualsResponse{
		Loaded:   loaded,
		CacheHit: cacheHit,
		File:     file,
		Periods:  table.Periods,
		RowCount: len(table.Rows),
	}
}
