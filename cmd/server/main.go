package main

import (
	"net/http"
	"os"
	"time"

	"human-bingo/internal/config"
	"human-bingo/internal/db"
	"human-bingo/internal/logger"
	"human-bingo/internal/server"
)

func main() {
	logger.Init()
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Log.Warnf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(db.PoolSettings{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second,
	})
	if err != nil {
		logger.Log.Fatalf("failed to open database: %v", err)
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg)
	logger.Log.Infof("human bingo server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Log.Fatalf("server stopped: %v", err)
	}
}
