package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/japaniel/vocabprep/pkg/applog"
	"github.com/japaniel/vocabprep/pkg/category"
	"github.com/japaniel/vocabprep/pkg/classify"
	"github.com/japaniel/vocabprep/pkg/config"
	"github.com/japaniel/vocabprep/pkg/lesson"
	"github.com/japaniel/vocabprep/pkg/pipeline"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	configFlag := flag.String("config", "", "Path to YAML config (default $CONFIG_PATH or ./vocabprep.yaml)")
	phaseFlag := flag.String("phase", "", "Comma-separated phases to run (default all)")
	sourceFlag := flag.String("source", "", "Source workbook (.xlsx, .csv, .tsv, .html, .xls)")
	dataFlag := flag.String("data", "", "Directory of lesson tables")
	dbFlag := flag.String("db", "", "SQLite database for the export phase")
	reportsFlag := flag.String("reports", "", "Directory for report files")
	dryRunFlag := flag.Bool("dry-run", false, "Compute changes without writing files")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *sourceFlag != "" {
		cfg.Source.Path = *sourceFlag
	}
	if *dataFlag != "" {
		cfg.Data.Dir = *dataFlag
	}
	if *dbFlag != "" {
		cfg.DB.Path = *dbFlag
	}
	if *reportsFlag != "" {
		cfg.Reports.Dir = *reportsFlag
	}

	phases, err := pipeline.ParsePhases(*phaseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -phase: %v\n", err)
		return 2
	}

	logger := applog.New(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var opts []classify.Option
	if cfg.Classifier.IrregularFirst {
		opts = append(opts, classify.WithIrregularFirst())
	}

	p := pipeline.New(logger, pipeline.Options{
		Store:          lesson.Store{Dir: cfg.Data.Dir},
		FirstLesson:    cfg.Data.FirstLesson,
		LastLesson:     cfg.Data.LastLesson,
		SourcePath:     cfg.Source.Path,
		Marker:         cfg.Source.Marker,
		ReportsDir:     cfg.Reports.Dir,
		DBPath:         cfg.DB.Path,
		BatchSize:      cfg.DB.BatchSize,
		DictionaryPath: cfg.Dictionary.Path,
		AutoDownload:   cfg.Dictionary.AutoDownload,
		Workers:        cfg.Dictionary.Workers,
		Classifier:     classify.New(opts...),
		Categories:     category.Default,
		DryRun:         *dryRunFlag,
	})

	if *dryRunFlag {
		fmt.Println("Dry run: no files will be written.")
	}
	fmt.Printf("Processing lessons %d-%d in %s\n", cfg.Data.FirstLesson, cfg.Data.LastLesson, cfg.Data.Dir)

	stats, err := p.Run(ctx, phases)
	if err != nil {
		logger.Error("pipeline aborted", slog.String("error", err.Error()))
		return 1
	}

	for _, name := range pipeline.Phases() {
		r, ok := p.Results()[name]
		if !ok {
			continue
		}
		status := "ok"
		if r.Err != nil {
			status = "failed: " + r.Err.Error()
		}
		fmt.Printf("  %-10s processed=%d changed=%d skipped=%d errors=%d (%v) %s\n",
			name, r.Processed, r.Changed, r.Skipped, r.Errors, r.Duration.Round(time.Millisecond), status)
	}
	fmt.Printf("Lessons: %d, words: %d\n", len(stats.Lessons()), stats.Total())

	if stats.Stored != nil {
		fmt.Printf("Database rows: %d categories\n", len(stats.Stored))
	}

	if p.HasErrors() {
		return 1
	}
	return 0
}
