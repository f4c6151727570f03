package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"criticode/internal/platform/config"
	"criticode/internal/platform/logger"
	phttp "criticode/internal/platform/net/http"
	"criticode/internal/platform/store"

	"criticode/internal/adapters/llm"
	"criticode/internal/services/api"
	"criticode/internal/services/ratelimit"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")
	aiCfg := root.Prefix("ANTHROPIC_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "criticode-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// per-identity request budgets, counters swept in process
	counters := ratelimit.NewMemoryStore(time.Minute)
	defer counters.Close()
	limiter := ratelimit.New(counters)

	// model backend; absent credentials leave analysis unavailable but the
	// rest of the API up
	var model llm.Completer
	if key := aiCfg.MayString("API_KEY", ""); key != "" {
		model = llm.New(llm.Config{
			APIKey:    key,
			Model:     aiCfg.MayString("MODEL", "claude-sonnet-4-20250514"),
			MaxTokens: int64(aiCfg.MayInt("MAX_TOKENS", 4096)),
		})
	} else {
		l.Warn().Msg("ANTHROPIC_API_KEY not set, analysis endpoints will report unavailable")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:  apiCfg,
			Store:   st,
			Logger:  l,
			Limiter: limiter,
			Model:   model,
		},
	)

	// run until signalled, then drain
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutdown signal received")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
		<-errCh
	}
}
