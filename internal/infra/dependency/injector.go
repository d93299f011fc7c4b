// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/budgy/backend/config"
	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/application/usecase/audit"
	"github.com/budgy/backend/internal/application/usecase/auth"
	"github.com/budgy/backend/internal/application/usecase/category"
	"github.com/budgy/backend/internal/application/usecase/summary"
	"github.com/budgy/backend/internal/application/usecase/transaction"
	"github.com/budgy/backend/internal/infra/server/router"
	"github.com/budgy/backend/internal/integration/adapters"
	"github.com/budgy/backend/internal/integration/entrypoint/controller"
	"github.com/budgy/backend/internal/integration/entrypoint/middleware"
	"github.com/budgy/backend/internal/integration/persistence"
)

// Options carries the infrastructure that differs between the server and tests.
type Options struct {
	Storage            adapter.AttachmentStorage
	SummaryCache       adapter.SummaryCache
	CacheHealthChecker func() bool
	Clock              summary.Clock
	Logger             *slog.Logger
}

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	RateLimiter     *middleware.RateLimiter
	PasswordService adapter.PasswordService
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	cache := opts.SummaryCache
	if cache == nil {
		cache = adapters.NewNoopSummaryCache()
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	actionLogRepo := persistence.NewActionLogRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	exporter := adapters.NewTransactionExporter()
	recorder := audit.NewRecorder(actionLogRepo, opts.Logger)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, recorder)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, recorder)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService, userRepo)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, opts.Storage, cache, recorder)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, recorder)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, cache, recorder)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, recorder)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, cache, recorder)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, cache, recorder)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, opts.Storage, cache, recorder)
	exportTransactionsUseCase := transaction.NewExportTransactionsUseCase(transactionRepo, exporter)
	uploadAttachmentUseCase := transaction.NewUploadAttachmentUseCase(transactionRepo, opts.Storage, recorder, cfg.Storage.MaxAttachmentBytes)
	downloadAttachmentUseCase := transaction.NewDownloadAttachmentUseCase(transactionRepo, opts.Storage)
	removeAttachmentUseCase := transaction.NewRemoveAttachmentUseCase(transactionRepo, opts.Storage, recorder)

	// Create summary and audit use cases
	monthlySummaryUseCase := summary.NewGetMonthlySummaryUseCase(transactionRepo, cache, opts.Clock)
	listActionLogsUseCase := audit.NewListActionLogsUseCase(actionLogRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, opts.CacheHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getCurrentUserUseCase,
		deleteAccountUseCase,
		listActionLogsUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		exportTransactionsUseCase,
		uploadAttachmentUseCase,
		downloadAttachmentUseCase,
		removeAttachmentUseCase,
	)

	summaryController := controller.NewSummaryController(monthlySummaryUseCase)
	adminController := controller.NewAdminController(listActionLogsUseCase)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.RateLimit.Enabled,
		cfg.RateLimit.MaxAttempts,
		cfg.RateLimit.Window,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	roleMiddleware := middleware.NewRoleMiddleware(userRepo)

	r := router.NewRouter(router.Controllers{
		Health:      healthController,
		Auth:        authController,
		User:        userController,
		Category:    categoryController,
		Transaction: transactionController,
		Summary:     summaryController,
		Admin:       adminController,
	}, loginRateLimiter, authMiddleware, roleMiddleware, cfg.Server.CORSAllowedOrigins)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		RateLimiter:     loginRateLimiter,
		PasswordService: passwordService,
	}
}
