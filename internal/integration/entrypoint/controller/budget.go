package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/internal/application/usecase/budget"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	uploadUseCase *budget.UploadBudgetUseCase
	getUseCase    *budget.GetBudgetUseCase
	listUseCase   *budget.ListBudgetCategoriesUseCase
	lookupUseCase *budget.LookupCategoryUseCase
	exportUseCase *budget.ExportBudgetUseCase
	maxBytes      int64
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	uploadUseCase *budget.UploadBudgetUseCase,
	getUseCase *budget.GetBudgetUseCase,
	listUseCase *budget.ListBudgetCategoriesUseCase,
	lookupUseCase *budget.LookupCategoryUseCase,
	exportUseCase *budget.ExportBudgetUseCase,
	maxBytes int64,
) *BudgetController {
	return &BudgetController{
		uploadUseCase: uploadUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		lookupUseCase: lookupUseCase,
		exportUseCase: exportUseCase,
		maxBytes:      maxBytes,
	}
}

// Upload handles PUT /budget requests.
func (c *BudgetController) Upload(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	name, data, err := readUpload(ctx, "budget.yaml", c.maxBytes)
	if err != nil {
		handleError(ctx, err)
		return
	}
	reload, _ := strconv.ParseBool(ctx.DefaultQuery("reload", "false"))

	output, err := c.uploadUseCase.Execute(ctx.Request.Context(), budget.UploadBudgetInput{
		SessionID: sessionID,
		FileName:  name,
		Data:      data,
		Reload:    reload,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Loaded {
		status = http.StatusCreated
	}
	file := output.File
	ctx.JSON(status, dto.UploadBudgetResponse{
		Loaded:         output.Loaded,
		BudgetResponse: dto.ToBudgetResponse(output.Budget, output.BudgetVersion, dto.ToFileResponse(&file)),
	})
}

// Get handles GET /budget requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget, output.BudgetVersion, dto.ToFileResponse(output.File)))
}

// ListCategories handles GET /budget/categories requests.
func (c *BudgetController) ListCategories(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.ListCategoriesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidCategoryType),
		})
		return
	}

	categories, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetCategoriesInput{
		SessionID: sessionID,
		Type:      entity.CategoryType(query.Type),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetCategoryListResponse(categories))
}

// Lookup handles GET /budget/lookup/:name requests.
func (c *BudgetController) Lookup(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.lookupUseCase.Execute(ctx.Request.Context(), sessionID, ctx.Param("name"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLookupCategoryResponse(output))
}

// ExportDocument handles GET /budget/document requests.
func (c *BudgetController) ExportDocument(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	var query dto.ExportDocumentQuery
	_ = ctx.ShouldBindQuery(&query)

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), sessionID, query.Format)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+output.FileName)
	ctx.Data(http.StatusOK, output.ContentType, output.Data)
}
