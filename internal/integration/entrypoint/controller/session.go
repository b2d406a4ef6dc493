package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

// SessionController handles session lifecycle endpoints.
type SessionController struct {
	createUseCase      *session.CreateSessionUseCase
	getUseCase         *session.GetSessionUseCase
	endUseCase         *session.EndSessionUseCase
	listUploadsUseCase *session.ListUploadsUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(
	createUseCase *session.CreateSessionUseCase,
	getUseCase *session.GetSessionUseCase,
	endUseCase *session.EndSessionUseCase,
	listUploadsUseCase *session.ListUploadsUseCase,
) *SessionController {
	return &SessionController{
		createUseCase:      createUseCase,
		getUseCase:         getUseCase,
		endUseCase:         endUseCase,
		listUploadsUseCase: listUploadsUseCase,
	}
}

// Create handles POST /sessions requests.
func (c *SessionController) Create(ctx *gin.Context) {
	output, err := c.createUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateSessionResponse(output))
}

// Get handles GET /session requests.
func (c *SessionController) Get(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	state, err := c.getUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(state))
}

// End handles DELETE /session requests.
func (c *SessionController) End(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	if err := c.endUseCase.Execute(ctx.Request.Context(), sessionID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListUploads handles GET /session/uploads requests.
func (c *SessionController) ListUploads(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	uploads, err := c.listUploadsUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUploadListResponse(uploads))
}
