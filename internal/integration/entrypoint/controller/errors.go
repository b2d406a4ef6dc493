package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/middleware"
)

// requireSession returns the session bound to the request or answers 401.
func requireSession(ctx *gin.Context) (uuid.UUID, bool) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Session not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return sessionID, ok
}

// handleError maps domain errors to HTTP responses. Anything unrecognised is
// reported and answered with a generic 500.
func handleError(ctx *gin.Context, err error) {
	var (
		budgetErr    *domainerror.BudgetError
		analysisErr  *domainerror.AnalysisError
		ingestionErr *domainerror.IngestionError
		sessionErr   *domainerror.SessionError
	)

	switch {
	case errors.As(err, &budgetErr):
		ctx.JSON(statusForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error:      budgetErr.Message,
			Code:       string(budgetErr.Code),
			Details:    strings.Join(budgetErr.Violations, "; "),
			Violations: budgetErr.Violations,
		})
	case errors.As(err, &analysisErr):
		status := statusForAnalysisError(analysisErr.Code)
		if status == http.StatusInternalServerError {
			reportError(ctx, err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: analysisErr.Message,
			Code:  string(analysisErr.Code),
		})
	case errors.As(err, &ingestionErr):
		response := dto.ErrorResponse{
			Error: ingestionErr.Message,
			Code:  string(ingestionErr.Code),
		}
		if ingestionErr.Err != nil && ingestionErr.Code == domainerror.ErrCodeUnreadableFile {
			response.Details = ingestionErr.Err.Error()
		}
		ctx.JSON(statusForIngestionError(ingestionErr.Code), response)
	case errors.As(err, &sessionErr):
		ctx.JSON(statusForSessionError(sessionErr.Code), dto.ErrorResponse{
			Error: sessionErr.Message,
			Code:  string(sessionErr.Code),
		})
	default:
		reportError(ctx, err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  string(domainerror.ErrCodeInternalError),
		})
	}
}

// reportError logs an unexpected error and sends it to Sentry when configured.
func reportError(ctx *gin.Context, err error) {
	sessionID, _ := middleware.GetSessionIDFromContext(ctx)
	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"session_id", sessionID,
		"error", err,
	)

	hub := sentry.GetHubFromContext(ctx.Request.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("route", ctx.FullPath())
		scope.SetTag("session_id", sessionID.String())
		hub.CaptureException(err)
	})
}

func statusForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDocument,
		domainerror.ErrCodeMissingField,
		domainerror.ErrCodeInvalidAmountType,
		domainerror.ErrCodeDuplicateCategory:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeUnsupportedFormat,
		domainerror.ErrCodeInvalidEditAmount,
		domainerror.ErrCodeEmptyEditBatch,
		domainerror.ErrCodeInvalidCategoryType:
		return http.StatusBadRequest
	case domainerror.ErrCodeBudgetCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetNotLoaded:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusForAnalysisError(code domainerror.AnalysisErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnsetData:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidPeriodRange,
		domainerror.ErrCodeInvalidThreshold,
		domainerror.ErrCodeUnknownPeriod:
		return http.StatusBadRequest
	case domainerror.ErrCodeTrendNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func statusForIngestionError(code domainerror.IngestionErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnsupportedFileType, domainerror.ErrCodeMissingFile:
		return http.StatusBadRequest
	case domainerror.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeUnreadableFile,
		domainerror.ErrCodeEmptyExport,
		domainerror.ErrCodeInvalidCellValue:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusForSessionError(code domainerror.SessionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingToken, domainerror.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
