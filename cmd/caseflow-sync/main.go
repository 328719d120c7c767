// caseflow-sync repairs webhook drift by polling the tracker list for
// recently updated tasks and replaying them through the cache transform
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"caseflow/internal/adapters/tracker"
	"caseflow/internal/platform/config"
	"caseflow/internal/platform/logger"
	"caseflow/internal/platform/store"

	leadsrepo "caseflow/internal/services/leads/repo"
	leadssvc "caseflow/internal/services/leads/service"
)

func main() {
	_ = godotenv.Load()

	var (
		interval = flag.Duration("interval", 5*time.Minute, "poll interval, 0 runs once and exits")
		lookback = flag.Duration("lookback", 30*time.Minute, "how far back each poll reaches")
		limit    = flag.Int("limit", 100, "max tasks per poll")
	)
	flag.Parse()

	l := logger.Named("sync")

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	trackerCfg := root.Prefix("TRACKER_")

	listID := trackerCfg.MustString("LIST_ID")
	client := tracker.NewClient(tracker.Options{
		BaseURL: trackerCfg.MayString("BASE_URL", ""),
		Token:   trackerCfg.MustString("TOKEN"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "caseflow-sync",
			PG: store.PGConfig{
				Enabled:  true,
				URL:      pgCfg.MustString("DBURL"),
				MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
				LogSQL:   pgCfg.MayBool("LOG_SQL", false),
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

	svc := leadssvc.New(st.PG, leadsrepo.NewPG())

	poll := func() {
		since := time.Now().Add(-*lookback)
		tasks, err := client.ListTasksUpdatedSince(ctx, listID, since, *limit)
		if err != nil {
			l.Error().Err(err).Msg("list tasks failed")
			return
		}

		synced := 0
		for _, task := range tasks {
			if _, err := svc.Upsert(ctx, leadssvc.TransformTask(task)); err != nil {
				l.Warn().Err(err).Str("task_id", task.ID).Msg("sync upsert failed")
				continue
			}
			synced++
		}
		l.Info().Int("fetched", len(tasks)).Int("synced", synced).Msg("poll done")
	}

	poll()
	if *interval <= 0 {
		return
	}

	t := time.NewTicker(*interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			l.Info().Msg("shutting down")
			return
		case <-t.C:
			poll()
		}
	}
}
