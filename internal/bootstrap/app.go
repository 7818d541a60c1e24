package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"legalassist-backend/internal/analyses"
	"legalassist-backend/internal/documents"
	"legalassist-backend/internal/llm"
	"legalassist-backend/internal/services/health"
	"legalassist-backend/internal/shared/auth"
	"legalassist-backend/internal/shared/config"
	"legalassist-backend/internal/shared/server"
	"legalassist-backend/internal/shared/storage/db"
	"legalassist-backend/internal/shared/storage/object"
	localstore "legalassist-backend/internal/shared/storage/object/local"
	s3store "legalassist-backend/internal/shared/storage/object/s3"
	"legalassist-backend/internal/shared/telemetry"
	"legalassist-backend/internal/users"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Signer           *auth.Signer
	LLM              llm.Client
	UsersRepo        users.Repo
	DocumentsRepo    documents.Repo
	UsersService     *users.Service
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
}

// Build wires repositories, services and handlers from cfg.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		cfg.UploadDir = "uploads"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Signer: signer,
		LLM:    llm.NewStub(cfg.LLMSimulateLatency),
	}
	buildServices(app)

	var healthDB health.Pinger
	if sqlDB != nil {
		healthDB = sqlDB
	}
	deps := server.RouterDeps{
		Config:          cfg,
		Verifier:        signer,
		Health:          health.NewService(healthDB),
		UserHandler:     app.UsersHandler,
		DocumentHandler: app.DocumentsHandler,
		AnalysisHandler: app.AnalysisHandler,
	}
	app.Router = server.NewRouter(deps)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     sqlDB != nil,
		"llm_latency":  cfg.LLMSimulateLatency,
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.Env == "production" {
			telemetry.Warn("bootstrap.no_database", map[string]any{
				"message": "DATABASE_URL is empty; users and documents will not survive a restart",
			})
		} else {
			telemetry.Info("bootstrap.no_database", map[string]any{
				"message": "DATABASE_URL empty; using in-memory repositories",
			})
		}
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db_connect_failed", map[string]any{
				"message": "using in-memory repositories",
				"error":   err,
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.UploadDir), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Signer)
	app.DocumentsService = documents.NewService(app.Store, app.DocumentsRepo, documents.Limits{
		MaxUploadBytes: app.Config.MaxUploadBytes,
		ExtractTimeout: app.Config.ExtractTimeout,
	})
	app.DocumentsService.Owners = app.UsersService
	app.AnalysesService = analyses.NewService(app.LLM)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
}
