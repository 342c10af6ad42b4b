//go:build wireinject

package main

import (
	"github.com/google/wire"
	gormlogger "gorm.io/gorm/logger"

	"chat-server/internal/config"
	"chat-server/internal/domain/message"
	"chat-server/internal/domain/presence"
	"chat-server/internal/domain/routing"
	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/infrastructure/database"
	"chat-server/internal/infrastructure/logger"
	messagerepo "chat-server/internal/infrastructure/repository/message"
	userrepo "chat-server/internal/infrastructure/repository/user"
	"chat-server/internal/interfaces/httpserver"
	"chat-server/internal/interfaces/wsgateway"
)

var storeSet = wire.NewSet(
	messagerepo.NewPostgresRepository,
	wire.Bind(new(message.Store), new(*messagerepo.PostgresRepository)),
	userrepo.NewPostgresRepository,
	wire.Bind(new(user.Store), new(*userrepo.PostgresRepository)),
)

var authSet = wire.NewSet(
	auth.NewTokenIssuer,
	wire.Bind(new(user.TokenMinter), new(*auth.TokenIssuer)),
	auth.NewBcryptHasher,
	wire.Bind(new(user.PasswordHasher), new(*auth.BcryptHasher)),
	auth.NewValidator,
)

var chatSet = wire.NewSet(
	message.NewService,
	user.NewService,
	presence.NewRegistry,
	routing.NewRouter,
	wsgateway.New,
)

// BuildApplication demonstrates how to assemble the chat service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		database.Connect,
		storeSet,
		authSet,
		chatSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}
