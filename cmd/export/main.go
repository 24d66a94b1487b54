package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alienterprises/cashbook/internal/app"
	"github.com/alienterprises/cashbook/internal/config"
	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/export"
	"github.com/alienterprises/cashbook/internal/logger"
)

func main() {
	userID := flag.String("user", "", "User ID to export as (required)")
	admin := flag.Bool("admin", false, "Export all users' transactions")
	out := flag.String("out", "", "Output file path, defaults to stdout")
	sync := flag.Bool("sync", false, "Reconcile with the remote before exporting")
	flag.Parse()

	log := logger.New()

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a, err := app.New(ctx, cfg, domain.User{ID: *userID, Privileged: *admin}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Teardown(ctx)

	if err := a.Ledger().Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load local cache")
	}

	if *sync {
		if _, err := a.Sync(ctx); err != nil {
			log.Fatal().Err(err).Msg("Reconciliation failed")
		}
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("Failed to create output file")
		}
		defer f.Close()
		w = f
	}

	txs := a.Transactions()
	if err := export.WriteCSV(w, txs); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	if *out != "" {
		fmt.Printf("Wrote %d transaction(s) to %s\n", len(txs), *out)
	}
}
