package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderbot/internal/config"
	"orderbot/internal/flow"
	httpx "orderbot/internal/http"
	"orderbot/internal/provider"
	"orderbot/internal/provider/payo"
	"orderbot/internal/provider/staticlink"
	"orderbot/internal/state"
	"orderbot/internal/whatsapp"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conversation state: Redis when configured, in-process otherwise.
	var store state.Store
	var sweepables []state.Sweepable
	if cfg.State.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.State.RedisAddr})
		store = state.NewRedisStore(rdb, cfg.State.SessionTTL)
		log.Info().Str("addr", cfg.State.RedisAddr).Msg("conversation state in redis")
	} else {
		mem := state.NewMemoryStore(cfg.State.SessionTTL)
		store = mem
		sweepables = append(sweepables, mem)
		log.Info().Msg("conversation state in memory")
	}

	sessions := state.NewSessionStore(cfg.State.SessionTTL)
	sweepables = append(sweepables, sessions)
	go state.NewSweeper(sweepables...).Run(ctx)

	// Payment backend selection, degrading to the static link when the
	// dynamic provider has no credential.
	backend := provider.Choose(provider.BackendType(cfg.Payment.Backend), cfg.Payment.UserToken, cfg.Payment.StaticURL)
	var payments provider.Backend
	switch backend {
	case provider.BackendStatic:
		payments = staticlink.New(cfg.Payment.StaticURL, sessions)
	default:
		payments = payo.New(cfg.Payment.BaseURL, cfg.Payment.UserToken, cfg.App.BaseURL+"/payment/callback")
	}

	messenger := whatsapp.New(cfg.WhatsApp)
	ctrl := flow.New(store, sessions, messenger, payments, cfg.App.StorefrontURL, cfg.App.SupportPhone)

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:  cfg,
		Flow:    ctrl,
		Backend: backend,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Str("env", cfg.App.Env).
			Str("payment_backend", string(backend)).
			Str("whatsapp_token", config.Masked(cfg.WhatsApp.Token, 4)).
			Str("payment_token", config.Masked(cfg.Payment.UserToken, 4)).
			Msgf("order bot listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
