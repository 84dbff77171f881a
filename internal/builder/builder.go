package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/botbee/botbee-backend/internal/api"
	botapi "github.com/botbee/botbee-backend/internal/api/bot"
	chatapi "github.com/botbee/botbee-backend/internal/api/chat"
	resourceapi "github.com/botbee/botbee-backend/internal/api/resource"
	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/integration/embedder"
	"github.com/botbee/botbee-backend/internal/integration/llm"
	"github.com/botbee/botbee-backend/internal/integration/scraper"
	"github.com/botbee/botbee-backend/internal/integration/transcriber"
	"github.com/botbee/botbee-backend/internal/pkg/chunker"
	"github.com/botbee/botbee-backend/internal/pkg/extractor"
	"github.com/botbee/botbee-backend/internal/pkg/validator"
	"github.com/botbee/botbee-backend/internal/repository"
	botuc "github.com/botbee/botbee-backend/internal/usecase/bot"
	chatuc "github.com/botbee/botbee-backend/internal/usecase/chat"
	"github.com/botbee/botbee-backend/internal/usecase/ingestion"
	"github.com/botbee/botbee-backend/internal/usecase/retrieval"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	botRepo := repository.NewBotPostgres(db)
	resourceRepo := repository.NewResourcePostgres(db)
	chunkRepo := repository.NewChunkPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var embedderConn ingestion.Embedder
	var queryEmbedder retrieval.Embedder
	var scraperConn ingestion.Scraper
	var transcriberConn ingestion.Transcriber
	var llmConn chatuc.LLMConnector
	var genaiClient *genai.Client

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		mockEmbedder := embedder.NewMockConnector(logger)
		embedderConn = mockEmbedder
		queryEmbedder = mockEmbedder
		scraperConn = scraper.NewMockConnector(logger)
		transcriberConn = transcriber.NewMockConnector(logger)
		llmConn = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		genaiClient, err = genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiCfg.APIKey))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("create genai client: %w", err)
		}

		geminiEmbedder := embedder.NewConnector(cfg.GeminiCfg, genaiClient, logger)
		embedderConn = geminiEmbedder
		queryEmbedder = geminiEmbedder
		scraperConn = scraper.NewConnector(cfg.ScraperCfg, logger)
		transcriberConn = transcriber.NewConnector(cfg.GeminiCfg, genaiClient, logger)
		llmConn = llm.NewConnector(cfg.GeminiCfg, cfg.ChatCfg, genaiClient, logger)
	}

	// Initialize validators
	requestValidator := validator.NewValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases. The chat usecase comes first so the bot usecase
	// can evict its cached bot configuration on delete.
	retrievalUC := retrieval.NewUsecase(chunkRepo, queryEmbedder, logger)

	chatUC := chatuc.NewUsecase(botRepo, llmConn, retrievalUC, cfg.ChatCfg, logger)

	botUC := botuc.NewUsecase(botRepo, requestValidator, chatUC, logger)

	ingestionUC := ingestion.NewUsecase(
		botRepo,
		resourceRepo,
		requestValidator,
		extractor.NewFactory(),
		chunker.New(cfg.IngestionCfg.MaxChunkChars),
		embedderConn,
		scraperConn,
		transcriberConn,
		logger,
	)

	logger.Info("Use cases initialized")

	// Setup API handlers
	botHandler := botapi.NewHandler(botUC)
	resourceHandler := resourceapi.NewHandler(ingestionUC, cfg.FileUploadCfg)
	chatHandler := chatapi.NewHandler(chatUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(botHandler, resourceHandler, chatHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. WriteTimeout has headroom for SSE chat streams and
	// slow provider-bound ingestion.
	server := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:      server,
		db:          db,
		genaiClient: genaiClient,
		logger:      logger,
	}, nil
}
