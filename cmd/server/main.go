// Package main is the entry point for the portfolio server.
//
// main.go stays minimal: read configuration, create the logger, hand
// everything to internal/server. All actual logic lives in the internal
// packages.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/rkormilcyn/portfolio/internal/auth"
	"github.com/rkormilcyn/portfolio/internal/handler"
	"github.com/rkormilcyn/portfolio/internal/server"
)

func main() {
	// .env is a convenience for local development; in production the
	// variables come from the real environment and the file is absent.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// BASE_URL is the externally visible origin, used to build the OAuth
	// callback URLs the providers redirect back to. Behind a reverse proxy
	// this differs from localhost:PORT.
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Error("SESSION_SECRET is required (at least 16 characters); generate one with: openssl rand -hex 32")
		os.Exit(1)
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	dbPath := "data/portfolio.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	github := auth.Credentials{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		CallbackURL:  baseURL + "/auth/github/callback",
	}
	yandex := auth.Credentials{
		ClientID:     os.Getenv("YANDEX_CLIENT_ID"),
		ClientSecret: os.Getenv("YANDEX_CLIENT_SECRET"),
		CallbackURL:  baseURL + "/auth/yandex/callback",
	}
	if github.ClientID == "" {
		logger.Warn("GITHUB_CLIENT_ID not set — GitHub login will fail at the provider")
	}
	if yandex.ClientID == "" {
		logger.Warn("YANDEX_CLIENT_ID not set — Yandex login will fail at the provider")
	}

	cfg := server.Config{
		Port:          port,
		TemplateDir:   templateDir,
		StaticDir:     staticDir,
		DBPath:        dbPath,
		SessionSecret: sessionSecret,
		GitHub:        github,
		Yandex:        yandex,
		Page: handler.PageConfig{
			Title:           "Portfolio — Roman Kormilcyn",
			YandexMetrikaID: os.Getenv("YANDEX_METRIKA_ID"),
			GTMID:           os.Getenv("GTM_ID"),
		},
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
