package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedran77/sortinghat/internal/auth"
	"github.com/vedran77/sortinghat/internal/catalog"
	"github.com/vedran77/sortinghat/internal/config"
	"github.com/vedran77/sortinghat/internal/database"
	"github.com/vedran77/sortinghat/internal/google"
	"github.com/vedran77/sortinghat/internal/llm"
	"github.com/vedran77/sortinghat/internal/logger"
	"github.com/vedran77/sortinghat/internal/mailer"
	"github.com/vedran77/sortinghat/internal/ratelimit"
	"github.com/vedran77/sortinghat/internal/repository"
	"github.com/vedran77/sortinghat/internal/repository/memory"
	postgresrepo "github.com/vedran77/sortinghat/internal/repository/postgres"
	"github.com/vedran77/sortinghat/internal/service"
	"github.com/vedran77/sortinghat/internal/transport/http/handlers"
	"github.com/vedran77/sortinghat/internal/transport/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		AddSource:   cfg.IsProduction(),
	})
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	var (
		userRepo repository.UserRepository
		favRepo  repository.FavoriteRepository
	)
	switch cfg.StoreDriver {
	case "memory":
		userRepo = memory.NewUserRepo()
		favRepo = memory.NewFavoriteRepo()
		log.Warn("using in-memory store, data is lost on restart")
	default:
		pool, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return err
		}
		defer pool.Close()
		log.Info("connected to database")

		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		userRepo = postgresrepo.NewUserRepo(pool)
		favRepo = postgresrepo.NewFavoriteRepo(pool)
	}

	// External collaborators
	characters := catalog.NewClient(cfg.CharacterAPIURL, cfg.HTTPClientTimeout, log)

	llmClient, err := newLLMClient(ctx, cfg, log)
	if err != nil {
		return err
	}

	var welcome mailer.Mailer
	if cfg.MailEnabled() {
		welcome, err = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			FromName: cfg.MailFromName,
		}, log)
		if err != nil {
			return err
		}
	} else {
		log.Warn("EMAIL_USER/EMAIL_PASS not set, welcome letters are only logged")
		welcome = mailer.NewLogMailer(log)
	}

	var verifier google.Verifier
	if cfg.GoogleClientID != "" {
		verifier = google.NewIDTokenVerifier(cfg.GoogleClientID)
	} else {
		log.Warn("GOOGLE_CLIENT_ID not set, google login disabled")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiry)

	// Services
	authService := service.NewAuthService(userRepo, tokens, verifier)
	characterService := service.NewCharacterService(characters)
	favoriteService := service.NewFavoriteService(favRepo, characters)
	sortingService := service.NewSortingService(userRepo, llmClient, welcome, log)

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	handler := router.New(router.Deps{
		Auth:        handlers.NewAuthHandler(authService, log),
		Characters:  handlers.NewCharacterHandler(characterService, log),
		Favorites:   handlers.NewFavoriteHandler(favoriteService, log),
		Sorting:     handlers.NewSortingHandler(sortingService, log),
		Tokens:      tokens,
		Users:       userRepo,
		Limiter:     limiter,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustedProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "env", cfg.Environment, "llm", cfg.LLMProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("listening: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

func newLLMClient(ctx context.Context, cfg *config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	default:
		return llm.NewGroqClient(llm.GroqConfig{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.GroqModel,
			Timeout: cfg.HTTPClientTimeout,
		}, log)
	}
}
