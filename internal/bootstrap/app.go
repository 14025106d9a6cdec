package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"legal-backend/internal/activities"
	"legal-backend/internal/analysis"
	"legal-backend/internal/chat"
	"legal-backend/internal/documents"
	"legal-backend/internal/generator"
	"legal-backend/internal/lawyers"
	"legal-backend/internal/llm"
	"legal-backend/internal/llm/claude"
	"legal-backend/internal/llm/gemini"
	"legal-backend/internal/llm/vertex"
	"legal-backend/internal/shared/auth"
	"legal-backend/internal/shared/config"
	"legal-backend/internal/shared/server"
	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/storage/db"
	"legal-backend/internal/shared/storage/object"
	gcsstore "legal-backend/internal/shared/storage/object/gcs"
	localstore "legal-backend/internal/shared/storage/object/local"
	s3store "legal-backend/internal/shared/storage/object/s3"
	"legal-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	DocumentsRepo  documents.DocumentsRepo
	ActivitiesRepo activities.Repo
	LawyersRepo    lawyers.Repo
	ChatRepo       chat.Repo

	DocumentsService  *documents.Service
	ActivitiesService *activities.Service
	AnalysisService   *analysis.Service
	GeneratorService  *generator.Service
	ChatService       *chat.Service

	closers []io.Closer
}

// Options adjusts Build for callers other than the HTTP server.
type Options struct {
	// SkipRouter leaves Router nil, for one-shot CLI commands.
	SkipRouter bool
	// DBOptions overrides the connection pool settings.
	DBOptions *db.Options
}

// Build wires repositories, storage, the model provider, services and handlers.
func Build(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	client, err := buildLLM(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if c, ok := client.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}
	app.LLM = client
	if _, placeholder := client.(llm.PlaceholderClient); cfg.LLMRetry && !placeholder {
		app.LLM = llm.WithRetry(client)
	}

	if err := buildServices(ctx, app); err != nil {
		app.Close()
		return nil, err
	}

	if !opts.SkipRouter {
		app.Router = server.NewRouter(server.RouterDeps{
			Config:            cfg,
			Verifier:          auth.NewVerifier(cfg.JWTSecret),
			RateLimiter:       middleware.NewRateLimiter(nil),
			AnalysisHandler:   analysis.NewHandler(app.AnalysisService),
			GeneratorHandler:  generator.NewHandler(app.GeneratorService),
			DocumentsHandler:  documents.NewHandler(app.DocumentsService),
			ActivitiesHandler: activities.NewHandler(app.ActivitiesService),
			LawyersHandler:    lawyers.NewHandler(app.LawyersRepo),
			ChatHandler:       chat.NewHandler(app.ChatService),
		})
	}
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsProduction() {
			return nil, eris.New("DATABASE_URL is required")
		}
		telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	dbOpts := db.OptionsFromEnv(db.DefaultServerOptions())
	if opts.DBOptions != nil {
		dbOpts = *opts.DBOptions
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, dbOpts)
	if err != nil {
		if !cfg.IsProduction() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, eris.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "gcs":
		if strings.TrimSpace(cfg.GCSBucket) == "" {
			return nil, eris.New("OBJECT_STORE=gcs requires GCS_BUCKET")
		}
		return gcsstore.New(ctx, cfg.GCSBucket, cfg.GCSPrefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "vertex":
		return vertex.NewClient(ctx, cfg.VertexProject, cfg.VertexRegion, cfg.GeminiModelText)
	case "anthropic":
		return claude.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case "placeholder":
		return llm.PlaceholderClient{}, nil
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" && !cfg.IsProduction() {
			telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"reason": "GEMINI_API_KEY empty"})
			return llm.PlaceholderClient{}, nil
		}
		return gemini.NewClient(gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModelText,
			Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		})
	}
}

// modelNames picks the analysis and drafting models for the provider.
func modelNames(cfg config.Config) (binary, text string) {
	if cfg.LLMProvider == "anthropic" {
		return cfg.AnthropicModel, cfg.AnthropicModel
	}
	return cfg.GeminiModelBinary, cfg.GeminiModelText
}

func buildServices(ctx context.Context, app *App) error {
	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ActivitiesRepo = &activities.PGRepo{DB: app.DB}
		app.LawyersRepo = &lawyers.PGRepo{DB: app.DB}
		app.ChatRepo = &chat.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ActivitiesRepo = activities.NewMemoryRepo()
		app.ChatRepo = chat.NewMemoryRepo()
		memLawyers := lawyers.NewMemoryRepo()
		if _, err := lawyers.Seed(ctx, memLawyers); err != nil {
			return err
		}
		app.LawyersRepo = memLawyers
	}

	binaryModel, textModel := modelNames(app.Config)

	app.DocumentsService = documents.NewService(app.Store, app.DocumentsRepo)
	app.ActivitiesService = activities.NewService(app.ActivitiesRepo)
	app.AnalysisService = analysis.NewService(app.LLM, app.Store, app.DocumentsRepo, app.ActivitiesService, analysis.BuilderConfig{
		BinaryModel:  binaryModel,
		TextModel:    textModel,
		PDFAsText:    app.Config.AnalysisPDFAsText,
		MaxTextChars: app.Config.AnalysisMaxTextChars,
	})

	gen := generator.NewService(app.LLM, app.Store, app.DocumentsRepo, app.ActivitiesService)
	gen.Model = textModel
	gen.BaseURL = app.Config.PublicBaseURL
	app.GeneratorService = gen

	assistant := chat.NewService(app.LLM, app.ChatRepo, app.ActivitiesService)
	assistant.Model = textModel
	app.ChatService = assistant
	return nil
}
