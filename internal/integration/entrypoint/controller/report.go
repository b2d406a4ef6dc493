package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/internal/application/usecase/analysis"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController handles report endpoints.
type ReportController struct {
	generateUseCase *analysis.GenerateReportUseCase
	exportUseCase   *analysis.ExportReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(generateUseCase *analysis.GenerateReportUseCase, exportUseCase *analysis.ExportReportUseCase) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
		exportUseCase:   exportUseCase,
	}
}

// Budget handles GET /reports/budget requests.
func (c *ReportController) Budget(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	report, err := c.generateUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetReportResponse(report))
}

// Excel handles GET /reports/excel requests.
func (c *ReportController) Excel(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+output.FileName)
	ctx.Data(http.StatusOK, xlsxContentType, output.Data)
}
