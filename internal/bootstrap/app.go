package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Harshmohod/land-verification/internal/documents"
	"github.com/Harshmohod/land-verification/internal/shared/auth"
	"github.com/Harshmohod/land-verification/internal/shared/config"
	"github.com/Harshmohod/land-verification/internal/shared/metrics"
	"github.com/Harshmohod/land-verification/internal/shared/server"
	"github.com/Harshmohod/land-verification/internal/shared/storage/db"
	"github.com/Harshmohod/land-verification/internal/shared/storage/object"
	localstore "github.com/Harshmohod/land-verification/internal/shared/storage/object/local"
	s3store "github.com/Harshmohod/land-verification/internal/shared/storage/object/s3"
	"github.com/Harshmohod/land-verification/internal/stats"
	"github.com/Harshmohod/land-verification/internal/users"
)

// App holds the shared dependencies behind the HTTP surface.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Tokens           *auth.TokenService
	Registry         *prometheus.Registry
	UsersRepo        users.Repo
	DocumentsRepo    documents.Repo
	UsersService     *users.Service
	DocumentsService *documents.Service
	StatsService     *stats.Service
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	StatsHandler     *stats.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
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

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Tokens:   auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Registry: buildRegistry(),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Tokens:           app.Tokens,
		Registry:         app.Registry,
		UsersHandler:     app.UsersHandler,
		DocumentsHandler: app.DocumentsHandler,
		StatsHandler:     app.StatsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics.RegisterCollectors(reg)
	return reg
}

func buildServices(app *App) {
	var userRepo users.Repo
	var docRepo documents.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo, app.Tokens)
	docSvc := &documents.Service{
		Store:  app.Store,
		Repo:   docRepo,
		Owners: ownerDirectory{repo: userRepo},
	}
	statsSvc := stats.NewService(userRepo, docRepo)

	app.UsersRepo = userRepo
	app.DocumentsRepo = docRepo
	app.UsersService = userSvc
	app.DocumentsService = docSvc
	app.StatsService = statsSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.StatsHandler = stats.NewHandler(statsSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

// ownerDirectory adapts the users repository to the document workflow's view
// of an account.
type ownerDirectory struct {
	repo users.Repo
}

func (d ownerDirectory) GetOwner(ctx context.Context, userID string) (documents.Owner, error) {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		return documents.Owner{}, err
	}
	return documents.Owner{
		ID:     u.ID,
		Name:   u.Name,
		Role:   u.Role,
		Region: u.Region,
	}, nil
}
