// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-dashboard/backend/internal/integration/entrypoint/controller"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	sessionController  *controller.SessionController
	budgetController   *controller.BudgetController
	editorController   *controller.EditorController
	actualsController  *controller.ActualsController
	analysisController *controller.AnalysisController
	reportController   *controller.ReportController
	uploadRateLimiter  *middleware.RateLimiter
	sessionAuth        *middleware.SessionAuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	sessionController *controller.SessionController,
	budgetController *controller.BudgetController,
	editorController *controller.EditorController,
	actualsController *controller.ActualsController,
	analysisController *controller.AnalysisController,
	reportController *controller.ReportController,
	uploadRateLimiter *middleware.RateLimiter,
	sessionAuth *middleware.SessionAuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		sessionController:  sessionController,
		budgetController:   budgetController,
		editorController:   editorController,
		actualsController:  actualsController,
		analysisController: analysisController,
		reportController:   reportController,
		uploadRateLimiter:  uploadRateLimiter,
		sessionAuth:        sessionAuth,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Logger(), middleware.SentryHub())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.POST("/sessions", r.sessionController.Create)

	authed := v1.Group("")
	authed.Use(r.sessionAuth.Authenticate())
	{
		session := authed.Group("/session")
		{
			session.GET("", r.sessionController.Get)
			session.DELETE("", r.sessionController.End)
			session.GET("/uploads", r.sessionController.ListUploads)
		}

		budget := authed.Group("/budget")
		{
			budget.PUT("", r.uploadRateLimiter.Middleware(), r.budgetController.Upload)
			budget.GET("", r.budgetController.Get)
			budget.GET("/categories", r.budgetController.ListCategories)
			budget.GET("/lookup/:name", r.budgetController.Lookup)
			budget.GET("/document", r.budgetController.ExportDocument)
		}

		editor := authed.Group("/editor")
		{
			editor.GET("", r.editorController.Get)
			editor.PATCH("", r.editorController.Apply)
			editor.POST("/save", r.editorController.Save)
			editor.POST("/discard", r.editorController.Discard)
		}

		actuals := authed.Group("/actuals")
		{
			actuals.PUT("", r.uploadRateLimiter.Middleware(), r.actualsController.Upload)
			actuals.GET("", r.actualsController.Get)
		}

		analysis := authed.Group("/analysis")
		{
			analysis.GET("/settings", r.analysisController.GetSettings)
			analysis.PUT("/settings", r.analysisController.UpdateSettings)
			analysis.GET("/summary", r.analysisController.Summary)
			analysis.GET("/variances", r.analysisController.Variances)
			analysis.GET("/overspending", r.analysisController.Overspending)
			analysis.GET("/savings", r.analysisController.Savings)
			analysis.GET("/trends", r.analysisController.Trends)
			analysis.GET("/reconciliation", r.analysisController.Reconciliation)
		}

		reports := authed.Group("/reports")
		{
			reports.GET("/budget", r.reportController.Budget)
			reports.GET("/excel", r.reportController.Excel)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
