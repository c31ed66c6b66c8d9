package main

import (
	"github.com/bazary/bazary-backend/internal/config"
	"github.com/bazary/bazary-backend/internal/db"
	"github.com/bazary/bazary-backend/internal/logger"
	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/server"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.AppEnv); err != nil {
		panic(err)
	}
	defer logger.Sync()

	conn, err := db.Connect(cfg)
	if err != nil {
		logger.L().Fatal("db connect failed", zap.Error(err))
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.PriceProposal{},
		&model.Conversation{},
		&model.Message{},
		&model.Review{},
		&model.Favorite{},
		&model.Report{},
		&model.KeywordAlert{},
		&model.Notification{},
	); err != nil {
		logger.L().Fatal("auto migrate failed", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	} else {
		logger.L().Warn("REDIS_ADDR not set; request rate limiting disabled")
	}

	srv := server.New(conn, rdb, cfg, gitSHA, buildTime)
	addr := ":" + cfg.Port
	logger.L().Info("starting server", zap.String("addr", addr))
	if err := srv.Start(addr); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
