package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ketenci/carsi/internal"
	"github.com/ketenci/carsi/internal/auth"
	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/events"
	"github.com/ketenci/carsi/internal/middleware"
	"github.com/ketenci/carsi/internal/postgres"
	"github.com/ketenci/carsi/internal/routes"
	"github.com/ketenci/carsi/internal/service"
	"github.com/ketenci/carsi/internal/session"
	"github.com/ketenci/carsi/internal/tax"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed")

	// Initialize pgx connection pool for application
	pool, err := postgres.NewPool(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize session store
	logger.Info("Connecting to Redis...", "addr", cfg.RedisAddr)
	sessions := session.NewRedisStore(cfg.RedisAddr, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if err := sessions.Ping(ctx); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	defer sessions.Close()

	// Initialize event publisher
	var publisher events.Publisher
	if cfg.NatsURL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NatsURL)
		publisher, err = events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			return fmt.Errorf("nats connection failed: %w", err)
		}
	} else {
		logger.Info("No NATS_URL configured, order events disabled")
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize stores
	productStore := postgres.NewProductStore(pool)
	orderStore := postgres.NewOrderStore(pool)
	userStore := postgres.NewUserStore(pool)
	addressStore := postgres.NewAddressStore(pool)
	cardStore := postgres.NewCardStore(pool)
	reviewStore := postgres.NewReviewStore(pool)
	newsStore := postgres.NewNewsStore(pool)
	notificationStore := postgres.NewNotificationStore(pool)
	visitorStore := postgres.NewVisitorStore(pool)

	// Initialize services
	notifier := service.NewNotifier(notificationStore, logger)
	taxCalculator := tax.NewPercentageCalculator(cfg.TaxRate)
	cartService := service.NewCartService(sessions, productStore, taxCalculator, logger)
	checkoutService := service.NewCheckoutService(cartService, orderStore, addressStore, cardStore, notifier, publisher, logger)
	orderService := service.NewOrderService(orderStore, notifier, publisher, logger)
	accountService := service.NewAccountService(userStore, addressStore, cardStore, notifier, logger)
	reviewService := service.NewReviewService(reviewStore, productStore, logger)

	// Create the initial admin account on first boot
	if err := ensureAdmin(ctx, userStore, cfg); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("carsi")

	router := routes.NewRouter(routes.Deps{
		Logger:        logger,
		Sessions:      sessions,
		Users:         userStore,
		Products:      productStore,
		Orders:        orderStore,
		Notifications: notificationStore,
		Visitors:      visitorStore,
		News:          newsStore,
		Cart:          cartService,
		Checkout:      checkoutService,
		Order:         orderService,
		Reviews:       reviewService,
		Accounts:      accountService,
		Notifier:      notifier,
		Metrics:       metrics,
		SecureCookies: cfg.Env == "prod",
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensureAdmin creates the configured admin account if it does not exist yet.
func ensureAdmin(ctx context.Context, users domain.UserStore, cfg *internal.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	_, err := users.GetUserByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !domain.IsCode(err, domain.ENOTFOUND) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	_, err = users.CreateUser(ctx, domain.User{
		Username:     cfg.Admin.Username,
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		IsAdmin:      true,
		IsActive:     true,
	})
	return err
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
