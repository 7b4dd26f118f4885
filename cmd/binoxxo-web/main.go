package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaminalder/codex-binoxxo/internal/app"
	"github.com/jaminalder/codex-binoxxo/internal/binoxxo"
	"github.com/jaminalder/codex-binoxxo/internal/config"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
	"github.com/jaminalder/codex-binoxxo/internal/logger"
	"github.com/jaminalder/codex-binoxxo/internal/storage"
	"github.com/jaminalder/codex-binoxxo/internal/web"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", cfg.Addr, "listen address")
	level := flag.String("log-level", cfg.LogLevel, "debug|info|warn|error")
	idle := flag.Duration("idle", 30*time.Minute, "drop sessions idle for longer than this")
	flag.Parse()

	log := logger.New(*level, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	kv, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("open settings store")
	}
	defer kv.Close()

	svc := app.NewService(binoxxo.New(seed), i18n.NewResourceManager(), kv, log)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           web.NewServer(svc, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := svc.Prune(*idle); n > 0 {
					log.Info().Int("sessions", n).Msg("pruned idle sessions")
				}
			}
		}
	}()

	go func() {
		log.Info().Str("addr", *addr).Str("store", cfg.Store.Backend).Int64("seed", seed).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
