package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pmn-sn/datahub/internal/datahub/importer"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

func main() {
	_ = godotenv.Load()

	var (
		dsn  = flag.String("dsn", envOrDefault("DATAHUB_IMPORT_DSN", "datahub.db"), "target database (sqlite path or postgres:// URL)")
		file = flag.String("file", "", "semicolon-delimited directory export to load")
	)
	flag.Parse()

	logger := slogx.New(slogx.Config{
		Service: "datahub-import",
		Env:     envOrDefault("ENV", "dev"),
		Level:   envOrDefault("LOG_LEVEL", "info"),
		Format:  envOrDefault("LOG_FORMAT", "text"),
	})

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: datahub-import -file export.csv [-dsn target]")
		os.Exit(2)
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("cannot open export", "file", *file, "err", err)
		os.Exit(1)
	}
	defer f.Close()

	im, err := importer.Open(*dsn, logger)
	if err != nil {
		logger.Error("cannot open target database", "err", err)
		os.Exit(1)
	}

	stats, err := im.Import(f)
	if err != nil {
		logger.Error("import failed", "err", err)
		os.Exit(1)
	}

	logger.Info("done", "inserted", stats.Inserted, "skipped", stats.Skipped)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
