package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/internal/application/usecase/ingestion"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

// ActualsController handles actual-spending endpoints.
type ActualsController struct {
	uploadUseCase *ingestion.UploadActualsUseCase
	getUseCase    *ingestion.GetActualsUseCase
	maxBytes      int64
}

// NewActualsController creates a new actuals controller instance.
func NewActualsController(
	uploadUseCase *ingestion.UploadActualsUseCase,
	getUseCase *ingestion.GetActualsUseCase,
	maxBytes int64,
) *ActualsController {
	return &ActualsController{
		uploadUseCase: uploadUseCase,
		getUseCase:    getUseCase,
		maxBytes:      maxBytes,
	}
}

// Upload handles PUT /actuals requests.
func (c *ActualsController) Upload(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	name, data, err := readUpload(ctx, "actuals.csv", c.maxBytes)
	if err != nil {
		handleError(ctx, err)
		return
	}
	reload, _ := strconv.ParseBool(ctx.DefaultQuery("reload", "false"))

	output, err := c.uploadUseCase.Execute(ctx.Request.Context(), ingestion.UploadActualsInput{
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
	ctx.JSON(status, dto.ToUploadActualsResponse(output.Loaded, output.CacheHit, output.Table, dto.ToFileResponse(&file)))
}

// Get handles GET /actuals requests.
func (c *ActualsController) Get(ctx *gin.Context) {
	sessionID, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), sessionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	file := output.File
	ctx.JSON(http.StatusOK, dto.ToActualsResponse(output.Table, dto.ToFileResponse(&file)))
}
