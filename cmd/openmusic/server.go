package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"openmusic/internal/app/albums"
	"openmusic/internal/app/likes"
	"openmusic/internal/app/playlists"
	"openmusic/internal/app/songs"
	"openmusic/internal/app/users"
	"openmusic/internal/auth"
	"openmusic/internal/cache"
	"openmusic/internal/httpapi"
	"openmusic/internal/storage"
	"openmusic/internal/store"
)

func newHTTPHandler(cfg Config, db *sql.DB, redisClient *redis.Client, logger zerolog.Logger) (http.Handler, error) {
	dataStore := store.New(db)
	aggregateCache := cache.NewRedis(redisClient)

	files, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.AccessTokenKey, cfg.RefreshTokenKey, cfg.AccessTokenAge)

	albumSvc := albums.New(dataStore, aggregateCache, cfg.BaseURL, logger)
	songSvc := songs.New(dataStore)
	playlistSvc := playlists.New(dataStore, dataStore)
	likeSvc := likes.New(dataStore, aggregateCache, logger)
	userSvc := users.New(dataStore, tokens)

	api := httpapi.New(albumSvc, songSvc, playlistSvc, likeSvc, userSvc, tokens, files, logger)

	handler := api.Routes()
	handler = httpapi.CORS(cfg.AllowedOrigin)(handler)
	handler = httpapi.RequestLogging(logger)(handler)
	handler = httpapi.Recovery(logger)(handler)

	return handler, nil
}
