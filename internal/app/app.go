package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/teamjokbo/jokbo/internal/config"
	"github.com/teamjokbo/jokbo/internal/db"
	"github.com/teamjokbo/jokbo/internal/realtime"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/service"
	"github.com/teamjokbo/jokbo/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	Hub               *realtime.Hub
	UserRepository    repository.UserRepository
	AuthService       *service.AuthService
	EmailService      *service.EmailService
	AttachmentService *service.AttachmentService
	EntryService      *service.EntryService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	entryRepository := repository.NewEntryRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenMagicLinkExpiry,
	)
	attachmentService := service.NewAttachmentService(fileStorage, cfg.SignedURLExpiry, cfg.SignedURLRefreshTTL)

	hub := realtime.New()
	entryService := service.NewEntryService(entryRepository, attachmentService, hub, cfg.TeamID)

	return &App{
		Cfg:               cfg,
		DB:                database,
		Hub:               hub,
		UserRepository:    userRepository,
		AuthService:       authService,
		EmailService:      emailService,
		AttachmentService: attachmentService,
		EntryService:      entryService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
