package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/gatekeeper/internal/auth/http"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/metrics"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the gatekeeper service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	hasher   *cryptox.Hasher
	registry *service.Registry
	metrics  *metrics.Metrics

	// Services
	tokenService  *service.TokenService
	authenticator *service.Authenticator
	validator     *service.Validator

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "gatekeeper",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
// Any error here is a configuration problem and should stop the process.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: metrics.New(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	secret, err := LoadSecret(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	if app.signer, app.verifier, err = InitTokenKeys(cfg, secret); err != nil {
		return nil, err
	}

	if app.hasher, err = NewHasher(cfg); err != nil {
		return nil, err
	}
	if app.registry, err = LoadRegistry(cfg, app.logger); err != nil {
		return nil, err
	}

	if app.db, err = OpenStore(cfg, app.logger); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("gatekeeper starting", "port", app.cfg.Port, "version", BuildVersion)

	if empty, err := app.db.Users().IsEmpty(context.Background()); err == nil && empty {
		app.logger.Warn("user directory is empty, add a user with `gatekeeper user add`")
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekeeper...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gatekeeper stopped")
	return nil
}

// NewHasher loads (or creates) the pepper and builds the password hasher.
func NewHasher(cfg Config) (*cryptox.Hasher, error) {
	pepper, err := cryptox.LoadOrGeneratePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	h, err := cryptox.NewHasher(cryptox.HasherOptions{
		Algorithm:  cfg.HashAlgorithm,
		BcryptCost: cfg.BcryptCost,
		Pepper:     pepper,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hasher: %w", err)
	}
	return h, nil
}

// LoadRegistry returns the role table from AUTH_ROLES_FILE, or the built-in
// table when it is unset.
func LoadRegistry(cfg Config, logger *slog.Logger) (*service.Registry, error) {
	if cfg.RolesFile == "" {
		logger.Info("using built-in role table")
		return service.DefaultRegistry(), nil
	}

	reg, err := service.LoadRegistryFile(cfg.RolesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	logger.Info("role table loaded", "file", cfg.RolesFile, "roles", reg.Roles())
	return reg, nil
}

// OpenStore opens the SQLite directory and applies migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Debug("database migrations applied successfully")
	return db, nil
}

// NewUserService wires the admin user service for CLI use. The caller owns
// the returned store and must close it.
func NewUserService(cfg Config, logger *slog.Logger) (*service.UserService, store.Store, error) {
	hasher, err := NewHasher(cfg)
	if err != nil {
		return nil, nil, err
	}
	registry, err := LoadRegistry(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	db, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return &service.UserService{Store: db, Hasher: hasher, Registry: registry}, db, nil
}

// initServices initializes the authentication services
func (app *Application) initServices() error {
	app.tokenService = &service.TokenService{
		Signer:    app.signer,
		Registry:  app.registry,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTTL,
	}

	authn, err := service.NewAuthenticator(app.hasher, httpapi.DefaultRealm)
	if err != nil {
		return fmt.Errorf("failed to initialize authenticator: %w", err)
	}
	app.authenticator = authn
	app.validator = service.NewValidator(app.verifier)

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.Authenticator = app.authenticator
	router.Validator = app.validator
	router.Registry = app.registry
	router.DirectoryTimeout = app.cfg.DirectoryTimeout
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
