package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"caseflow/internal/platform/config"
	"caseflow/internal/platform/logger"
	"caseflow/internal/platform/store"

	"caseflow/internal/services/importer"
	leadsrepo "caseflow/internal/services/leads/repo"
	leadssvc "caseflow/internal/services/leads/service"
)

func main() {
	_ = godotenv.Load()

	var (
		file       = flag.String("file", "", "export file to import (.csv or .xlsx)")
		format     = flag.String("format", "", "override format detection, csv or xlsx")
		sheet      = flag.String("sheet", "", "worksheet name for xlsx files, default first sheet")
		dryRun     = flag.Bool("dry-run", false, "parse and transform without writing")
		initSchema = flag.Bool("init-schema", false, "apply the leads cache DDL before importing")
	)
	flag.Parse()

	l := logger.Get()
	if *file == "" {
		l.Fatal().Msg("usage: caseflow-import -file export.csv [-dry-run] [-init-schema]")
	}

	pgCfg := config.New().Prefix("SERVICE_PGSQL_")
	ctx := context.Background()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "caseflow-import",
			PG: store.PGConfig{
				Enabled:  true,
				URL:      pgCfg.MustString("DBURL"),
				MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 4)),
				LogSQL:   pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if *initSchema {
		if err := leadsrepo.EnsureSchema(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("schema bootstrap failed")
		}
	}

	svc := leadssvc.New(st.PG, leadsrepo.NewPG())
	im := importer.New(svc, importer.Options{DryRun: *dryRun, SheetName: *sheet})

	var sum importer.Summary
	if *format != "" {
		sum, err = im.FileAs(ctx, *file, *format)
	} else {
		sum, err = im.File(ctx, *file)
	}
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("import failed")
	}

	l.Info().
		Str("batch_id", sum.BatchID).
		Int("total", sum.Total).
		Int("imported", sum.Imported).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Msg("import complete")
}
