// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/budget-dashboard/backend/config"
	"github.com/budget-dashboard/backend/internal/application/adapter"
	"github.com/budget-dashboard/backend/internal/application/usecase/analysis"
	"github.com/budget-dashboard/backend/internal/application/usecase/budget"
	"github.com/budget-dashboard/backend/internal/application/usecase/ingestion"
	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
	"github.com/budget-dashboard/backend/internal/infra/cache"
	"github.com/budget-dashboard/backend/internal/infra/db"
	"github.com/budget-dashboard/backend/internal/infra/scheduler"
	"github.com/budget-dashboard/backend/internal/infra/server/router"
	"github.com/budget-dashboard/backend/internal/integration/adapters"
	spendingcache "github.com/budget-dashboard/backend/internal/integration/cache"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/controller"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-dashboard/backend/internal/integration/export"
	"github.com/budget-dashboard/backend/internal/integration/parser/budgetdoc"
	"github.com/budget-dashboard/backend/internal/integration/parser/spending"
	"github.com/budget-dashboard/backend/internal/integration/persistence"
)

const memoryCacheEntries = 64

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	DB      *db.Database
	Manager *session.Manager
	Router  *router.Router
	Janitor *scheduler.SessionJanitorJob
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case spending tables are cached in-process.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client) *Injector {
	return NewInjectorWithClock(cfg, database, redisClient, time.Now)
}

// NewInjectorWithClock is NewInjector with the clock sessions use for idle expiry.
func NewInjectorWithClock(cfg *config.Config, database *db.Database, redisClient *redis.Client, now func() time.Time) *Injector {
	// Session state
	manager := session.NewManager(cfg.Session.IdleTTL, now)
	defaults := valueobject.DefaultAnalysisSettings()
	defaults.OverspendThreshold = decimal.NewFromFloat(cfg.Analysis.OverspendThreshold)
	manager.SetDefaultSettings(defaults)

	// Create repositories and adapters
	uploadRepo := persistence.NewUploadRepository(database.DB())
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	codec := budgetdoc.NewCodec()
	reader := spending.NewReader()
	exporter := export.NewExcelExporter()

	var tableCache adapter.SpendingTableCache
	cacheHealthChecker := func() string { return "memory" }
	if redisClient != nil {
		tableCache = spendingcache.NewRedisSpendingCache(redisClient, cfg.Redis.CacheTTL)
		cacheHealthChecker = cache.HealthChecker(redisClient)
	} else {
		slog.Warn("Redis not configured, caching spending tables in memory")
		tableCache = spendingcache.NewMemorySpendingCache(memoryCacheEntries)
	}

	// Create session use cases
	createSessionUseCase := session.NewCreateSessionUseCase(manager, tokenService)
	getSessionUseCase := session.NewGetSessionUseCase(manager)
	endSessionUseCase := session.NewEndSessionUseCase(manager, uploadRepo)
	listUploadsUseCase := session.NewListUploadsUseCase(manager, uploadRepo)
	expireSessionsUseCase := session.NewExpireSessionsUseCase(manager, uploadRepo)

	// Create budget use cases
	uploadBudgetUseCase := budget.NewUploadBudgetUseCase(manager, codec, uploadRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(manager)
	listBudgetCategoriesUseCase := budget.NewListBudgetCategoriesUseCase(manager)
	lookupCategoryUseCase := budget.NewLookupCategoryUseCase(manager)
	exportBudgetUseCase := budget.NewExportBudgetUseCase(manager, codec)
	getEditorUseCase := budget.NewGetEditorUseCase(manager)
	applyEditsUseCase := budget.NewApplyEditsUseCase(manager)
	saveBudgetUseCase := budget.NewSaveBudgetUseCase(manager)
	discardBudgetUseCase := budget.NewDiscardBudgetUseCase(manager)

	// Create ingestion use cases
	uploadActualsUseCase := ingestion.NewUploadActualsUseCase(manager, reader, tableCache, uploadRepo, cfg.Upload.MaxBytes)
	getActualsUseCase := ingestion.NewGetActualsUseCase(manager)

	// Create analysis use cases
	getSettingsUseCase := analysis.NewGetSettingsUseCase(manager)
	updateSettingsUseCase := analysis.NewUpdateSettingsUseCase(manager)
	queryUseCase := analysis.NewQueryUseCase(manager)
	generateReportUseCase := analysis.NewGenerateReportUseCase(manager)
	exportReportUseCase := analysis.NewExportReportUseCase(manager, exporter)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck, cacheHealthChecker, manager.Count)

	sessionController := controller.NewSessionController(
		createSessionUseCase,
		getSessionUseCase,
		endSessionUseCase,
		listUploadsUseCase,
	)

	budgetController := controller.NewBudgetController(
		uploadBudgetUseCase,
		getBudgetUseCase,
		listBudgetCategoriesUseCase,
		lookupCategoryUseCase,
		exportBudgetUseCase,
		cfg.Upload.MaxBytes,
	)

	editorController := controller.NewEditorController(
		getEditorUseCase,
		applyEditsUseCase,
		saveBudgetUseCase,
		discardBudgetUseCase,
	)

	actualsController := controller.NewActualsController(
		uploadActualsUseCase,
		getActualsUseCase,
		cfg.Upload.MaxBytes,
	)

	analysisController := controller.NewAnalysisController(
		getSettingsUseCase,
		updateSettingsUseCase,
		queryUseCase,
	)

	reportController := controller.NewReportController(generateReportUseCase, exportReportUseCase)

	// Create middleware
	uploadRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Upload.RateLimitRequests, cfg.Upload.RateLimitWindow)
	sessionAuth := middleware.NewSessionAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		sessionController,
		budgetController,
		editorController,
		actualsController,
		analysisController,
		reportController,
		uploadRateLimiter,
		sessionAuth,
	)

	return &Injector{
		Config:  cfg,
		DB:      database,
		Manager: manager,
		Router:  r,
		Janitor: scheduler.NewSessionJanitorJob(expireSessionsUseCase, uploadRateLimiter),
	}
}
