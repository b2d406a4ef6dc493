// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() string
	sessionCounter     func() int
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Sessions  int    `json:"sessions"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. The cache
// checker reports "connected", "disconnected" or "memory".
func NewHealthController(dbHealthChecker func() bool, cacheHealthChecker func() string, sessionCounter func() int) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
		sessionCounter:     sessionCounter,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	cacheStatus := "memory"
	if h.cacheHealthChecker != nil {
		cacheStatus = h.cacheHealthChecker()
	}

	sessions := 0
	if h.sessionCounter != nil {
		sessions = h.sessionCounter()
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Cache:     cacheStatus,
		Sessions:  sessions,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
