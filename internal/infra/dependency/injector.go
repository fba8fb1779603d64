// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/personal-finance/tracker-api/config"
	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/application/usecase/auth"
	"github.com/personal-finance/tracker-api/internal/application/usecase/budget"
	"github.com/personal-finance/tracker-api/internal/application/usecase/insight"
	"github.com/personal-finance/tracker-api/internal/application/usecase/statistics"
	"github.com/personal-finance/tracker-api/internal/application/usecase/transaction"
	"github.com/personal-finance/tracker-api/internal/infra/db"
	"github.com/personal-finance/tracker-api/internal/infra/lock"
	"github.com/personal-finance/tracker-api/internal/infra/server/router"
	"github.com/personal-finance/tracker-api/internal/integration/adapters"
	"github.com/personal-finance/tracker-api/internal/integration/cache"
	"github.com/personal-finance/tracker-api/internal/integration/email"
	"github.com/personal-finance/tracker-api/internal/integration/email/templates"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/controller"
	"github.com/personal-finance/tracker-api/internal/integration/entrypoint/middleware"
	"github.com/personal-finance/tracker-api/internal/integration/events"
	"github.com/personal-finance/tracker-api/internal/integration/persistence"
	"github.com/personal-finance/tracker-api/internal/integration/scheduler"
)

const (
	loginRateWindow      = time.Minute
	rateLimiterEvictSpec = "@every 5m"
	jobTimeout           = 5 * time.Minute
	startupPingTimeout   = 3 * time.Second
)

// Externals holds the clients of services outside the process.
// Nil fields are built from the configuration by NewInjector.
type Externals struct {
	StatisticsCache  adapter.StatisticsCache
	EventPublisher   adapter.EventPublisher
	EmailSender      adapter.EmailSender
	InsightGenerator adapter.InsightGenerator
}

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	Database         *db.Database
	Router           *router.Router
	Scheduler        *scheduler.Scheduler
	LoginRateLimiter *middleware.RateLimiter

	closers []func() error
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, ext Externals) (*Injector, error) {
	injector := &Injector{Config: cfg, Database: database}

	if err := injector.buildExternals(&ext); err != nil {
		_ = injector.Close()
		return nil, err
	}

	gormDB := database.DB()

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)

	// Services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	locker := lock.NewUserLocker()

	var notifier adapter.BudgetNotifier
	if ext.EmailSender != nil {
		renderer, err := templates.NewRenderer()
		if err != nil {
			_ = injector.Close()
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		notifier = email.NewBudgetAlertNotifier(ext.EmailSender, renderer)
	}
	tracker := budget.NewTracker(budgetRepo, transactionRepo, userRepo, notifier)
	snapshots := statistics.NewSnapshotLoader(transactionRepo, ext.StatisticsCache)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, tracker, ext.EventPublisher, locker)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, tracker, ext.EventPublisher, locker)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, tracker, ext.EventPublisher, locker)
	exportTransactionsUseCase := transaction.NewExportTransactionsUseCase(transactionRepo)
	listCategoriesUseCase := transaction.NewListCategoriesUseCase(transactionRepo)

	// Statistics use cases
	getStatisticsUseCase := statistics.NewGetStatisticsUseCase(snapshots, transactionRepo)
	getMonthlyStatisticsUseCase := statistics.NewGetMonthlyStatisticsUseCase(snapshots)
	getCategorySummaryUseCase := statistics.NewGetCategorySummaryUseCase(snapshots)

	// Budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, tracker, locker)
	setBudgetUseCase := budget.NewSetBudgetUseCase(budgetRepo, tracker, locker)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, locker)

	getInsightUseCase := insight.NewGetInsightUseCase(ext.InsightGenerator, snapshots, cfg.Gemini.Timeout)

	// Controllers
	var cachePinger controller.Pinger
	if cfg.Redis.Enabled {
		cachePinger = ext.StatisticsCache
	}
	healthController := controller.NewHealthController(database.HealthCheck, cachePinger)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		exportTransactionsUseCase,
		listCategoriesUseCase,
	)

	statisticsController := controller.NewStatisticsController(
		getStatisticsUseCase,
		getMonthlyStatisticsUseCase,
		getCategorySummaryUseCase,
	)

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		setBudgetUseCase,
		deleteBudgetUseCase,
	)

	insightController := controller.NewInsightController(getInsightUseCase)

	// Middleware
	injector.LoginRateLimiter = middleware.NewRateLimiter(cfg.Server.LoginRateLimit, loginRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	injector.Router = router.NewRouter(
		healthController,
		authController,
		transactionController,
		statisticsController,
		budgetController,
		insightController,
		injector.LoginRateLimiter,
		authMiddleware,
	)

	// Background jobs
	injector.Scheduler = scheduler.NewScheduler(jobTimeout)
	if err := injector.Scheduler.Register("evict-idle-clients", rateLimiterEvictSpec,
		scheduler.EvictIdleClientsJob(injector.LoginRateLimiter)); err != nil {
		_ = injector.Close()
		return nil, err
	}
	if cfg.Scheduler.Enabled {
		if err := injector.Scheduler.Register("reconcile-budgets", cfg.Scheduler.BudgetReconcileSpec,
			scheduler.ReconcileBudgetsJob(tracker, locker)); err != nil {
			_ = injector.Close()
			return nil, err
		}
		if err := injector.Scheduler.Register("cleanup-refresh-tokens", cfg.Scheduler.TokenCleanupSpec,
			scheduler.CleanupTokensJob(tokenRepo)); err != nil {
			_ = injector.Close()
			return nil, err
		}
	}

	return injector, nil
}

// buildExternals fills the missing clients from the configuration.
// Disabled or unreachable optional services degrade to no-op implementations.
func (i *Injector) buildExternals(ext *Externals) error {
	cfg := i.Config

	if ext.StatisticsCache == nil {
		statisticsCache, err := i.newStatisticsCache()
		if err != nil {
			return err
		}
		ext.StatisticsCache = statisticsCache
	}

	if ext.EventPublisher == nil {
		ext.EventPublisher = i.newEventPublisher()
	}

	if ext.EmailSender == nil && cfg.Email.Enabled {
		client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to create email client: %w", err)
		}
		ext.EmailSender = client
	}

	if ext.InsightGenerator == nil {
		ext.InsightGenerator = adapters.NewGeminiInsightGenerator(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if !ext.InsightGenerator.IsAvailable() {
			slog.Info("Gemini API key not set, insights will use the fallback text")
		}
	}

	return nil
}

func (i *Injector) newStatisticsCache() (adapter.StatisticsCache, error) {
	cfg := i.Config.Redis
	if !cfg.Enabled {
		return cache.NoopStatisticsCache{}, nil
	}

	client, err := cache.NewRedisClient(cfg.URL, cfg.Password, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	i.closers = append(i.closers, client.Close)

	ctx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// Statistics are recomputed on every cache error, so the API still works
		slog.Warn("Redis unreachable, statistics will be recomputed until it recovers", "error", err)
	}

	return cache.NewRedisStatisticsCache(client, cfg.StatisticsTTL), nil
}

func (i *Injector) newEventPublisher() adapter.EventPublisher {
	cfg := i.Config.Events
	if !cfg.Enabled {
		return events.NoopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
	if err != nil {
		slog.Warn("AMQP broker unreachable, ledger events disabled", "error", err)
		return events.NoopPublisher{}
	}
	i.closers = append(i.closers, publisher.Close)
	return publisher
}

// Close releases the external clients owned by the injector.
func (i *Injector) Close() error {
	var errs []error
	for idx := len(i.closers) - 1; idx >= 0; idx-- {
		if err := i.closers[idx](); err != nil {
			errs = append(errs, err)
		}
	}
	i.closers = nil
	return errors.Join(errs...)
}
