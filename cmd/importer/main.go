// Package main implements the appointment importer: it reads a JSON array of
// raw appointment records, resolves their patients and writes the normalized
// appointments together with a per-record rejection report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/config"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain/scheduling"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/platform/logger"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/platform/memory"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/platform/postgres"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/redact"
)

type options struct {
	input          string
	output         string
	configFile     string
	allowPastDates bool
	migrate        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "-", "input file with a JSON array of appointment records (- for stdin)")
	flag.StringVar(&opts.output, "output", "-", "output file for the import report (- for stdout)")
	flag.StringVar(&opts.configFile, "config", "", "config file (default: ./config.yaml when present)")
	flag.BoolVar(&opts.allowPastDates, "allow-past-dates", false, "accept appointments dated before today")
	flag.BoolVar(&opts.migrate, "migrate", false, "apply database migrations before importing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("import failed", "error", redact.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadFrom(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// stdout may carry the report, so logs go to stderr.
	log := logger.SetupWithWriter(cfg.Server, os.Stderr)
	ctx = logger.WithLogger(ctx, log)

	params, err := scheduling.NewParams(scheduling.ParamsConfig{
		DefaultCurrency:         cfg.Rules.DefaultCurrency,
		CancellationWindowHours: cfg.Rules.CancellationWindowHours,
		AllowPastDates:          cfg.Rules.AllowPastDates || opts.allowPastDates,
	})
	if err != nil {
		return fmt.Errorf("failed to build scheduling rules: %w", err)
	}

	var im *Importer
	if cfg.Database.URL == "" {
		log.Info("no database configured, using in-memory patient store")
		im = NewImporter(memory.NewPatientStore(), nil, params, log)
	} else {
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if opts.migrate {
			if err := postgres.Migrate(ctx, db, log); err != nil {
				return err
			}
		}
		im = NewImporter(postgres.NewPostgresPatientStore(db, log), db, params, log)
	}

	in, closeIn, err := openInput(opts.input)
	if err != nil {
		return err
	}
	defer closeIn()

	records, err := readRecords(in)
	if err != nil {
		return err
	}

	report, err := im.Run(ctx, records)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	return writeReport(out, report)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
