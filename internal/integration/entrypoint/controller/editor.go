package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/internal/application/usecase/budget"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

// EditorController handles budget editor endpoints.
type EditorController struct {
	getUseCase     *budget.GetEditorUseCase
	applyUseCase   *budget.ApplyEditsUseCase
	saveUseCase    *budget.SaveBudgetUseCase
	discardUseCase *budget.DiscardBudgetUseCase
}

// NewEditorController creates a new editor controller instance.
func NewEditorController(
	getUseCase *budget.GetEditorUseCase,
	applyUseCase *budget.ApplyEditsUseCase,
	saveUseCase *budget.SaveBudgetUseCase,
	discardUseCase *budget.DiscardBudgetUseCase,
) *EditorController {
	return &EditorController{
		getUseCase:     getUseCase,
		applyUseCase:   applyUseCase,
		saveUseCase:    saveUseCase,
		discardUseCase: discardUseCase,
	}
}

// Get handles GET /editor requests.
func (c *EditorController) Get(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEditorResponse(output))
}

// Apply handles PATCH /editor requests.
func (c *EditorController) Apply(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.ApplyEditsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidEditAmount),
		})
		return
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), budget.ApplyEditsInput{
		SessionID: sessionID,
		Edits:     req.ToEditInputs(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEditorResponse(output))
}

// Save handles POST /editor/save requests.
func (c *EditorController) Save(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEditorResponse(output))
}

// Discard handles POST /editor/discard requests.
func (c *EditorController) Discard(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.discardUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEditorResponse(output))
}
