package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/internal/application/usecase/analysis"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

// AnalysisController handles analysis endpoints.
type AnalysisController struct {
	getSettingsUseCase    *analysis.GetSettingsUseCase
	updateSettingsUseCase *analysis.UpdateSettingsUseCase
	queryUseCase          *analysis.QueryUseCase
}

// NewAnalysisController creates a new analysis controller instance.
func NewAnalysisController(
	getSettingsUseCase *analysis.GetSettingsUseCase,
	updateSettingsUseCase *analysis.UpdateSettingsUseCase,
	queryUseCase *analysis.QueryUseCase,
) *AnalysisController {
	return &AnalysisController{
		getSettingsUseCase:    getSettingsUseCase,
		updateSettingsUseCase: updateSettingsUseCase,
		queryUseCase:          queryUseCase,
	}
}

// GetSettings handles GET /analysis/settings requests.
func (c *AnalysisController) GetSettings(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.getSettingsUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsOutputResponse(output))
}

// UpdateSettings handles PUT /analysis/settings requests.
func (c *AnalysisController) UpdateSettings(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPeriodRange),
		})
		return
	}

	input := req.ToUpdateSettingsInput()
	input.SessionID = sessionID

	output, err := c.updateSettingsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsOutputResponse(output))
}

// Summary handles GET /analysis/summary requests.
func (c *AnalysisController) Summary(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	summary, err := c.queryUseCase.Summary(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// Variances handles GET /analysis/variances requests.
func (c *AnalysisController) Variances(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	records, err := c.queryUseCase.Variances(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VarianceListResponse{Variances: dto.ToVarianceResponses(records)})
}

// Overspending handles GET /analysis/overspending requests.
func (c *AnalysisController) Overspending(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.OverspendingQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidThreshold),
		})
		return
	}

	var threshold *decimal.Decimal
	if query.Threshold != nil {
		t := decimal.NewFromFloat(*query.Threshold)
		threshold = &t
	}

	names, applied, err := c.queryUseCase.Overspending(ctx.Request.Context(), sessionID, threshold)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OverspendingResponse{
		Threshold:  applied.InexactFloat64(),
		Categories: names,
	})
}

// Savings handles GET /analysis/savings requests.
func (c *AnalysisController) Savings(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	opportunities, err := c.queryUseCase.Savings(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsListResponse(opportunities))
}

// Trends handles GET /analysis/trends requests.
func (c *AnalysisController) Trends(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.TrendsQuery
	_ = ctx.ShouldBindQuery(&query)

	trends, err := c.queryUseCase.Trends(ctx.Request.Context(), sessionID, query.Category)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendListResponse(trends))
}

// Reconciliation handles GET /analysis/reconciliation requests.
func (c *AnalysisController) Reconciliation(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	report, err := c.queryUseCase.Reconciliation(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReconciliationResponse(report))
}
