package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/marketlens-backend/internal/data/db"
	"github.com/yungbote/marketlens-backend/internal/data/seed"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	sqlite, err := db.NewSQLiteService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init sqlite: %w", err)
	}
	if err := sqlite.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("sqlite automigrate: %w", err)
	}
	theDB := sqlite.DB()

	clientset, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)

	if err := seed.Run(context.Background(), log, reposet.Persona, clientset.OpenAI, cfg.SeedFile); err != nil {
		log.Sync()
		return nil, fmt.Errorf("seed persona corpus: %w", err)
	}

	serviceset := wireServices(log, cfg, clientset, reposet)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, handlerset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Clients:  clientset,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
