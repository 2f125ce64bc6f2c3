package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/sessions"

	"github.com/FACorreiaa/loci-canvas-api/internal/domain/location"
	sessiondomain "github.com/FACorreiaa/loci-canvas-api/internal/domain/session"
	"github.com/FACorreiaa/loci-canvas-api/internal/domain/style"
	"github.com/FACorreiaa/loci-canvas-api/internal/domain/visual"
	"github.com/FACorreiaa/loci-canvas-api/internal/llm"
	"github.com/FACorreiaa/loci-canvas-api/pkg/config"
	"github.com/FACorreiaa/loci-canvas-api/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	ChatClient  llm.ChatClient
	ImageClient llm.ImageClient

	CookieStore sessions.Store
	ShareTokens *sessiondomain.ShareTokens

	// Repositories
	LocationRepo location.Repository
	VisualRepo   visual.Repository
	SessionRepo  sessiondomain.Repository

	// Services
	LocationService location.Service
	StyleService    style.Service
	VisualService   visual.Service
	SessionService  sessiondomain.Service

	// Handlers
	LocationHandler *location.Handler
	StyleHandler    *style.Handler
	VisualHandler   *visual.Handler
	SessionHandler  *sessiondomain.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initClients(ctx); err != nil {
		return nil, fmt.Errorf("failed to init LLM clients: %w", err)
	}

	deps.initRepositories()
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initClients initializes the Gemini chat and image clients
func (d *Dependencies) initClients(ctx context.Context) error {
	chatClient, err := llm.NewGeminiChatClient(ctx, d.Config.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create chat client: %w", err)
	}
	imageClient, err := llm.NewGeminiImageClient(ctx, d.Config.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create image client: %w", err)
	}

	d.ChatClient = chatClient
	d.ImageClient = imageClient

	d.Logger.Info("LLM clients initialized", slog.String("model", chatClient.Model()))
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() {
	d.LocationRepo = location.NewRepositoryImpl(d.DB.Pool, d.Logger)
	d.VisualRepo = visual.NewRepositoryImpl(d.DB.Pool, d.Logger)
	d.SessionRepo = sessiondomain.NewRepositoryImpl(d.DB.Pool, d.Logger)

	d.Logger.Info("repositories initialized")
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() {
	secret := []byte(d.Config.Auth.SessionSecret)
	d.CookieStore = sessions.NewCookieStore(secret)
	d.ShareTokens = sessiondomain.NewShareTokens(secret, d.Config.Auth.ShareTokenTTL)

	d.LocationService = location.NewServiceImpl(d.LocationRepo, d.ChatClient, d.Logger)
	d.StyleService = style.NewServiceImpl(d.ChatClient, d.Logger)
	d.VisualService = visual.NewServiceImpl(d.VisualRepo, d.ImageClient, visual.Config{
		InlineModel: d.Config.LLM.InlineModel,
		ImagenModel: d.Config.LLM.ImagenModel,
	}, d.Logger)
	d.SessionService = sessiondomain.NewServiceImpl(d.SessionRepo, d.Logger)

	d.Logger.Info("services initialized")
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() {
	d.LocationHandler = location.NewHandler(d.LocationService, d.SessionService, d.Logger)
	d.StyleHandler = style.NewHandler(d.StyleService, d.SessionService, d.Logger)
	d.VisualHandler = visual.NewHandler(d.VisualService, d.SessionService, d.Logger)
	d.SessionHandler = sessiondomain.NewHandler(d.SessionService, d.ShareTokens, d.Logger)

	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
