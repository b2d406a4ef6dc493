package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handleError(ctx, err)
	return w
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "duplicate category",
			err:    domainerror.NewBudgetError(domainerror.ErrCodeDuplicateCategory, "duplicate", domainerror.ErrDuplicateCategoryName),
			status: http.StatusUnprocessableEntity,
			code:   "BUD-010004",
		},
		{
			name:   "budget not loaded",
			err:    domainerror.NewBudgetError(domainerror.ErrCodeBudgetNotLoaded, "no budget", domainerror.ErrBudgetNotLoaded),
			status: http.StatusConflict,
			code:   "BUD-020002",
		},
		{
			name:   "unset data",
			err:    domainerror.NewUnsetDataError("variances"),
			status: http.StatusConflict,
			code:   "ANL-010001",
		},
		{
			name:   "unknown period",
			err:    domainerror.NewAnalysisError(domainerror.ErrCodeUnknownPeriod, "unknown", domainerror.ErrInvalidPeriodRange),
			status: http.StatusBadRequest,
			code:   "ANL-010004",
		},
		{
			name:   "file too large",
			err:    domainerror.NewIngestionError(domainerror.ErrCodeFileTooLarge, "too large", domainerror.ErrFileTooLarge),
			status: http.StatusRequestEntityTooLarge,
			code:   "ING-010005",
		},
		{
			name:   "wrapped session error",
			err:    fmt.Errorf("lookup: %w", domainerror.NewSessionError(domainerror.ErrCodeSessionNotFound, "gone", domainerror.ErrSessionNotFound)),
			status: http.StatusNotFound,
			code:   "SES-010001",
		},
		{
			name:   "unexpected error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "SES-990001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandleError_Violations(t *testing.T) {
	err := domainerror.NewBudgetError(domainerror.ErrCodeMissingField, "invalid document", domainerror.ErrInvalidBudgetDocument)
	err.Violations = []string{"income[0]: name is required", "expenses[1]: amount must be a number"}

	w := respond(err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, err.Violations, body.Violations)
	assert.Contains(t, body.Details, "name is required")
}

func TestReadUpload_RawBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		query    string
		maxBytes int64
		wantName string
		wantCode domainerror.IngestionErrorCode
	}{
		{name: "named body", body: "Category,Jan", query: "?filename=export.csv", wantName: "export.csv"},
		{name: "default name", body: "Category,Jan", wantName: "upload.csv"},
		{name: "empty body", wantCode: domainerror.ErrCodeMissingFile},
		{name: "over limit", body: "0123456789", maxBytes: 5, wantCode: domainerror.ErrCodeFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodPut, "/api/v1/actuals"+tt.query, strings.NewReader(tt.body))

			name, data, err := readUpload(ctx, "upload.csv", tt.maxBytes)

			if tt.wantCode != "" {
				var ingestionErr *domainerror.IngestionError
				require.ErrorAs(t, err, &ingestionErr)
				assert.Equal(t, tt.wantCode, ingestionErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.body, string(data))
		})
	}
}

func TestHealthController(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	NewHealthController(func() bool { return true }, nil, func() int { return 3 }).Check(ctx)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "connected", body.Database)
	assert.Equal(t, "memory", body.Cache)
	assert.Equal(t, 3, body.Sessions)
}
