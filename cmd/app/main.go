// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-cinehub-bot/internal/bot"
	"telegram-cinehub-bot/internal/config"
	pg "telegram-cinehub-bot/internal/infra/db/postgres"
	"telegram-cinehub-bot/internal/infra/logging"
	"telegram-cinehub-bot/internal/infra/metrics"
	red "telegram-cinehub-bot/internal/infra/redis"
	tele "telegram-cinehub-bot/internal/infra/telegram"
	"telegram-cinehub-bot/internal/infra/web"
	"telegram-cinehub-bot/internal/infra/worker"
	"telegram-cinehub-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	catalogRepo := pg.NewCatalogRepo(pool)
	settingsRepo := pg.NewSettingsRepo(pool, cfg.Bot.ForcedChannels, cfg.Bot.ForcedChannelLinks, cfg.Bot.AdminIDs)
	stateRepo := red.NewStateRepo(redisClient, cfg.Redis.StateTTL)

	// ---- Telegram ----
	client, err := tele.NewClient(cfg.Bot.Token, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	botUsername := cfg.Bot.Username
	if botUsername == "" {
		botUsername = client.Username()
	}

	// ---- Workers ----
	pool2 := worker.NewPool(cfg.Engine.BroadcastWorkers, logger)
	pool2.Start(ctx)
	defer pool2.Stop()

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, logger)
	statsUC := usecase.NewStatsUseCase(catalogRepo, userRepo, logger)
	broadcastUC := usecase.NewBroadcastUseCase(userRepo, client, pool2, logger)

	// ---- Engine ----
	subCache := bot.NewSubscriptionCache(
		cfg.Engine.SubCacheOkTTL, cfg.Engine.SubCacheFailTTL, cfg.Engine.SubCacheMaxEntries)
	gate := bot.NewSubscriptionGate(client, settingsRepo, subCache, logger)
	limiter := bot.NewRateLimiter(cfg.Engine.RateLimitInterval)

	engine := bot.New(
		bot.Config{
			BotUsername:     botUsername,
			ContentChannels: cfg.Bot.ContentChannelIDs,
			PollTimeoutSec:  cfg.Engine.PollTimeoutSeconds,
			BatchSize:       cfg.Engine.BatchSize,
			RetryDelay:      cfg.Engine.RetryDelay,
		},
		bot.Deps{
			Client:    client,
			Users:     userUC,
			Stats:     statsUC,
			Broadcast: broadcastUC,
			Catalog:   catalogRepo,
			Settings:  settingsRepo,
			States:    stateRepo,
			Gate:      gate,
			Limiter:   limiter,
			Log:       logger,
		},
	)
	go func() {
		if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("update loop stopped")
		}
	}()

	// ---- Ops/admin HTTP server ----
	srv := web.NewServer(statsUC, cfg.Web.JWTSecret, cfg.Web.AdminPassword, !cfg.Runtime.Dev, logger)
	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Web.Port), Handler: srv.Router()}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
