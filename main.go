package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/hako/durafmt"

	"github.com/TDiblik/as2org/as2org"
	"github.com/TDiblik/as2org/config"
	"github.com/TDiblik/as2org/dataset"
	"github.com/TDiblik/as2org/logging"
	"github.com/TDiblik/as2org/store"
)

const (
	exitOK = iota
	exitConfig
	exitIO
	exitData
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, config.ErrHelp) {
		fmt.Fprint(stdout, config.Usage())
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "[ERROR] %v\n", err)
		fmt.Fprint(stderr, config.Usage())
		return exitConfig
	}

	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "[ERROR] %v\n", err)
		return exitConfig
	}

	if err := convert(ctx, cfg, logger); err != nil {
		logger.Printf("[ERROR] %v", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, as2org.ErrParse), errors.Is(err, as2org.ErrReference):
		return exitData
	case errors.Is(err, as2org.ErrConfig):
		return exitConfig
	default:
		return exitIO
	}
}

func convert(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	level, _ := logging.NormalizeLevel(cfg.LogLevel)
	debug := level == logging.LevelDebug

	logger.Printf("[INFO] Starting to process %s", cfg.InputFile)
	start := time.Now()

	input, err := dataset.Open(ctx, cfg.InputFile, dataset.Options{
		DownloadDir: cfg.DownloadDir,
		Charset:     cfg.Charset,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer input.Close()

	parser := as2org.NewParser(logger)
	if err := parser.Parse(input); err != nil {
		return fmt.Errorf("unable to parse %s: %w", cfg.InputFile, err)
	}
	stats := parser.Stats()
	logger.Printf("[INFO] Parsed %d organizations and %d asns (%d comment lines)",
		stats.Organizations, stats.ASNs, stats.Comments)
	if debug {
		logger.Printf("[DEBUG] OrgMap %s", spew.Sdump(parser.Organizations()))
		logger.Printf("[DEBUG] AsnMap %s", spew.Sdump(parser.ASNs()))
	}

	groups, err := as2org.GroupByName(parser.Organizations(), parser.ASNs())
	if err != nil {
		return fmt.Errorf("unable to group %s: %w", cfg.InputFile, err)
	}
	if debug {
		for _, group := range groups {
			row := as2org.Row(group)
			logger.Printf("[DEBUG] Org %s - OrgIDS: %s; ASNS: %s; FriendlyNames %s; Locations: %s",
				row[0], row[2], row[1], row[3], row[4])
		}
	}

	if err := as2org.WriteFile(cfg.OutputFile, groups, cfg.Header()); err != nil {
		return err
	}
	if cfg.JSONFile != "" {
		if err := as2org.WriteJSONFile(cfg.JSONFile, groups); err != nil {
			return err
		}
		logger.Printf("[INFO] Wrote json to %s", cfg.JSONFile)
	}
	if cfg.SQLiteFile != "" {
		if err := store.WriteFile(cfg.SQLiteFile, groups); err != nil {
			return err
		}
		logger.Printf("[INFO] Wrote sqlite database to %s", cfg.SQLiteFile)
	}

	logger.Printf("[INFO] Done processing %s; Wrote %d organizations to %s; Took %s",
		cfg.InputFile, len(groups), cfg.OutputFile, durafmt.Parse(time.Since(start)).LimitFirstN(2))
	return nil
}
