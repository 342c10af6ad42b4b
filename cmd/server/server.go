package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"chat-server/internal/config"
	"chat-server/internal/domain/message"
	"chat-server/internal/domain/presence"
	"chat-server/internal/domain/routing"
	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/infrastructure/database"
	"chat-server/internal/infrastructure/logger"
	"chat-server/internal/infrastructure/observability"
	messagerepo "chat-server/internal/infrastructure/repository/message"
	userrepo "chat-server/internal/infrastructure/repository/user"
	"chat-server/internal/interfaces/httpserver"
	"chat-server/internal/interfaces/wsgateway"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	tokenIssuer := auth.NewTokenIssuer(cfg)
	authValidator := auth.NewValidator(tokenIssuer, log)

	userRepository := userrepo.NewPostgresRepository(db)
	messageRepository := messagerepo.NewPostgresRepository(db)

	userService := user.NewService(userRepository, tokenIssuer, auth.NewBcryptHasher(), log)
	messageService := message.NewService(messageRepository, userRepository, log)

	registry := presence.NewRegistry(log)
	router := routing.NewRouter(messageRepository, registry, log)
	gateway := wsgateway.New(cfg, registry, router, authValidator, log)

	httpServer := httpserver.New(cfg, log, messageService, userService, authValidator, gateway)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
