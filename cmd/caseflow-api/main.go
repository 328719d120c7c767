// @title         Caseflow API
// @version       0.1.0
// @description   Webhook intake, lead cache, and fuzzy search endpoints

package main

import (
	"context"

	"github.com/joho/godotenv"

	"caseflow/internal/platform/config"
	"caseflow/internal/platform/logger"
	phttp "caseflow/internal/platform/net/http"
	"caseflow/internal/platform/store"

	"caseflow/internal/services/api"
	leadsrepo "caseflow/internal/services/leads/repo"
)

func main() {
	// local development convenience, deployed environments set real env vars
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "caseflow-api",
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

	if pgCfg.MayBool("INIT_SCHEMA", true) {
		if err := leadsrepo.EnsureSchema(context.Background(), st.PG); err != nil {
			l.Panic().Err(err).Msg("schema bootstrap failed")
		}
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		context.Background(),
		srv.Router(),
		api.Options{
			Config:        root,
			Store:         st,
			Logger:        l,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
