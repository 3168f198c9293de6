package di

import (
	"github.com/tenerify/tenerify/internal/adapter/openai"
	"github.com/tenerify/tenerify/internal/adapter/storage/minio"
	"github.com/tenerify/tenerify/internal/adapter/tavily"
	"github.com/tenerify/tenerify/internal/app"
	"github.com/tenerify/tenerify/internal/auth"
	"github.com/tenerify/tenerify/internal/config"
	"github.com/tenerify/tenerify/internal/database/client"
	"github.com/tenerify/tenerify/internal/database/storage"
	"github.com/tenerify/tenerify/internal/logger"
	"github.com/tenerify/tenerify/internal/rabbitmq"
	"github.com/tenerify/tenerify/internal/usecase"
)

// BuildApp initializes every dependency and returns the assembled App.
func BuildApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	dbClient, err := client.NewClient(cfg.DatabaseURL, slogger)
	if err != nil {
		return nil, err
	}

	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	articleStorage := storage.NewArticleStorage(dbClient.DB, slogger)

	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
	tavilyClient := tavily.NewClient(cfg.TavilyAPIKey)

	fileStorage, err := minio.NewMinioClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	structureService := usecase.NewStructureService(openaiClient, slogger)

	authUseCase := usecase.NewAuthInteractor(userStorage, tokenService, slogger)
	blogUseCase := usecase.NewBlogInteractor(articleStorage, structureService, slogger)
	searchUseCase := usecase.NewSearchInteractor(tavilyClient, openaiClient, slogger)

	application := app.NewApp(
		cfg,
		dbClient.DB,
		authUseCase,
		blogUseCase,
		searchUseCase,
		fileStorage,
		rabbitMQClient,
		rabbitMQClient,
		slogger,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
