package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/alienterprises/cashbook/internal/app"
	"github.com/alienterprises/cashbook/internal/config"
	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/logger"
)

func main() {
	userID := flag.String("user", "", "User ID to reconcile as (required)")
	admin := flag.Bool("admin", false, "Reconcile across all users")
	dryRun := flag.Bool("dry-run", false, "Report what would change without writing anywhere")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall run timeout")
	flag.Parse()

	log := logger.New()

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.SpreadsheetID == "" {
		log.Fatal().Msg("Error: CASHBOOK_SPREADSHEET_ID is not set, nothing to reconcile against")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a, err := app.New(ctx, cfg, domain.User{ID: *userID, Privileged: *admin}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Teardown(ctx)

	// Load the local cache without triggering the app's own initial sync:
	// the run below is the one reconciliation pass this command performs.
	if err := a.Ledger().Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load local cache")
	}

	local := a.Ledger().Transactions()
	log.Info().Int("local", len(local)).Msg("Starting reconciliation")

	if *dryRun {
		reportDryRun(ctx, a, local)
		return
	}

	result, err := a.Sync(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation failed")
	}

	if !result.RemoteAvailable {
		log.Warn().Msg("Remote unreachable, local data unchanged")
		return
	}

	log.Info().
		Int("final", len(result.Final)).
		Int("uploaded", len(result.Uploaded)).
		Int("uploadFailed", len(result.UploadFailed)).
		Int("uploadUnknown", len(result.UploadUnknown)).
		Msg("Reconciliation complete")

	fmt.Printf("Merged set: %d transaction(s)\n", len(result.Final))
	fmt.Printf("Uploaded %d local-only record(s), %d failed, %d unknown\n",
		len(result.Uploaded), len(result.UploadFailed), len(result.UploadUnknown))
	for _, id := range result.UploadFailed {
		fmt.Printf("  upload failed: %s\n", id)
	}
	for _, id := range result.UploadUnknown {
		fmt.Printf("  outcome unknown: %s\n", id)
	}
}

// reportDryRun compares local and remote sets without writing to either.
func reportDryRun(ctx context.Context, a *app.App, local []domain.Transaction) {
	log := logger.FromContext(ctx)

	if !a.TestConnection(ctx) {
		log.Fatal().Msg("Remote unreachable")
	}

	remote, err := a.Remote().GetAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch remote transactions")
	}

	remoteByID := make(map[string]domain.Transaction, len(remote))
	for _, tx := range remote {
		remoteByID[tx.ID] = tx
	}

	var wouldUpload, wouldReplace int
	for _, tx := range local {
		if _, ok := remoteByID[tx.ID]; ok {
			wouldReplace++
		} else {
			wouldUpload++
		}
	}

	fmt.Printf("Remote: %d transaction(s), local: %d\n", len(remote), len(local))
	fmt.Printf("Would upload %d local-only record(s)\n", wouldUpload)
	fmt.Printf("Would take the remote version of %d shared record(s)\n", wouldReplace)
	fmt.Printf("Merged set would hold %d transaction(s)\n", len(remote)+wouldUpload)
}
