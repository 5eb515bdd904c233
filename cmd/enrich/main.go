// Command enrich derives study records for a list of Japanese words from
// JMdict, KANJIDIC2, a JLPT word list and optional pitch-accent and
// Tatoeba sources, and writes them as JSON files or PostgreSQL rows.
//
// Flags:
//
//	--config   path to YAML config file (default: $CONFIG_PATH or ./config.yaml)
//	--words    plain word list to enrich instead of the JLPT list
//	--output   json or postgres, overrides output.kind
//	--dry-run  derive records without writing them
//	--show     print the stored record of one word and exit
//	--version  print version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/kotoba-enricher/internal/adapter/jsonfile"
	"github.com/heartmarshall/kotoba-enricher/internal/adapter/postgres/enrichment"
	"github.com/heartmarshall/kotoba-enricher/internal/app"
	"github.com/heartmarshall/kotoba-enricher/internal/config"
	"github.com/heartmarshall/kotoba-enricher/internal/enricher"
)

// Compile-time interface assertions.
var (
	_ enricher.Sink = (*jsonfile.Writer)(nil)
	_ enricher.Sink = (*enrichment.Repo)(nil)
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	wordsFlag := flag.String("words", "", "plain word list to enrich instead of the JLPT list")
	outputFlag := flag.String("output", "", "output kind: json or postgres")
	dryRunFlag := flag.Bool("dry-run", false, "derive records without writing them")
	showFlag := flag.String("show", "", "print the stored record of this word and exit")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Hour)
	defer cancel()

	opts := app.Options{
		WordsPath: *wordsFlag,
		Output:    *outputFlag,
		DryRun:    *dryRunFlag,
	}

	if *showFlag != "" {
		if err := app.Show(ctx, cfg, logger, opts, *showFlag, os.Stdout); err != nil {
			logger.Error("show record", slog.String("word", *showFlag), slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	result, err := app.Run(ctx, cfg, logger, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("enrichment interrupted", slog.Int("written", result.Written))
		}
		logger.Error("enrichment failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, s := range result.Skipped {
		logger.Info("skipped", slog.String("word", s.Word), slog.String("reason", s.Err.Error()))
	}
}
