package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/lanternhq/lantern/internal/identity/http"
	"github.com/lanternhq/lantern/internal/identity/mail"
	"github.com/lanternhq/lantern/internal/identity/revocation"
	"github.com/lanternhq/lantern/internal/identity/service"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/internal/identity/store/drivers/sqlite"
	"github.com/lanternhq/lantern/pkg/cryptox"
	"github.com/lanternhq/lantern/pkg/jwtx"
	"github.com/lanternhq/lantern/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the identity service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	signer    *jwtx.Signer
	verifier  *jwtx.Verifier
	blacklist *revocation.Registry
	mailer    mail.Mailer

	registrationService *service.RegistrationService
	sessionService      *service.SessionService
	profileService      *service.ProfileService
	auditService        *service.AuditService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.blacklist = revocation.NewRegistry(app.logger, app.cfg.RevocationSweep)
	app.mailer = &mail.LogMailer{Logger: app.logger, BaseURL: app.cfg.MailBaseURL}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Seed the admin account before accepting traffic.
	if err := app.bootstrapService.EnsureAdmin(context.Background()); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	app.housekeepingService.Start()
	app.blacklist.Start()

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()
	app.blacklist.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSigner loads the Ed25519 signing key, or generates an ephemeral one.
// Ephemeral keys invalidate outstanding access tokens on restart, which is
// acceptable because they are short-lived anyway.
func (app *Application) initSigner() error {
	if app.cfg.SigningKeyFile != "" {
		pemKey, err := os.ReadFile(app.cfg.SigningKeyFile)
		if err != nil {
			return fmt.Errorf("failed to read signing key: %w", err)
		}
		signer, err := jwtx.NewSigner(pemKey)
		if err != nil {
			return fmt.Errorf("failed to load signing key: %w", err)
		}
		app.signer = signer
		app.logger.Info("loaded signing key", "file", app.cfg.SigningKeyFile)
	} else {
		signer, err := jwtx.GenerateSigner()
		if err != nil {
			return fmt.Errorf("failed to generate signing key: %w", err)
		}
		app.signer = signer
		app.logger.Info("generated ephemeral signing key")
	}

	app.verifier = app.signer.Verifier(app.cfg.Issuer)
	return nil
}

func (app *Application) initServices() {
	adminEmails := make(map[string]struct{}, len(app.cfg.AdminEmails))
	for _, email := range app.cfg.AdminEmails {
		adminEmails[email] = struct{}{}
	}

	app.auditService = &service.AuditService{Store: app.db}

	app.registrationService = &service.RegistrationService{
		Store:           app.db,
		Mailer:          app.mailer,
		Audit:           app.auditService,
		AdminEmails:     adminEmails,
		VerificationTTL: app.cfg.VerificationTTL,
		ResendCooldown:  app.cfg.ResendCooldown,
	}

	app.sessionService = &service.SessionService{
		Store:      app.db,
		Signer:     app.signer,
		Verifier:   app.verifier,
		Blacklist:  app.blacklist,
		Audit:      app.auditService,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}

	app.profileService = &service.ProfileService{
		Store: app.db,
		Audit: app.auditService,
	}

	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		Logger:        app.logger,
		AdminEmail:    app.cfg.BootstrapAdminEmail,
		AdminName:     app.cfg.BootstrapAdminName,
		AdminPassword: app.cfg.BootstrapAdminPassword,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		app.blacklist,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.RegistrationService = app.registrationService
	router.SessionService = app.sessionService
	router.ProfileService = app.profileService
	router.AuditService = app.auditService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
