package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	db, err := openDatabase(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	redisClient, err := openRedis(context.Background(), cfg.RedisAddr)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect redis")
	}
	defer redisClient.Close()

	handler, err := newHTTPHandler(cfg, db, redisClient, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("wire services")
	}

	logger.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
