package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/app"
	"github.com/alienterprises/cashbook/internal/config"
	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/logger"
	"github.com/alienterprises/cashbook/internal/summary"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(log)
	case "list":
		runList(log)
	case "vault":
		runVault(log)
	case "summary":
		runSummary(log)
	case "udhar":
		runUdhar(log)
	case "companies":
		runCompanies(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Cashbook CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cashbook <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add       Record a credit or debit transaction")
	fmt.Println("  list      List visible transactions, newest first")
	fmt.Println("  vault     Show the note-denomination vault")
	fmt.Println("  summary   Show company balances for a location")
	fmt.Println("  udhar     Show person-wise udhar balances")
	fmt.Println("  companies List, add, or remove registered companies")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cashbook <command> -h' for more information on a command.")
}

func openApp(ctx context.Context, log zerolog.Logger, userID string, privileged bool) *app.App {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	a, err := app.New(ctx, cfg, domain.User{ID: userID, Privileged: privileged}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	if err := a.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger")
	}
	return a
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	userID := fs.String("user", "", "User ID recording the transaction (required)")
	txType := fs.String("type", "credit", "Transaction type: credit or debit")
	method := fs.String("method", "cash", "Payment method: cash or upi")
	company := fs.String("company", domain.NotApplicable, "Company name")
	person := fs.String("person", "", "Person name")
	location := fs.String("location", "", "Location (required)")
	amount := fs.Float64("amount", 0, "Amount (UPI only; cash amounts derive from the breakdown)")
	breakdownJSON := fs.String("breakdown", "", `Cash note breakdown as JSON, e.g. '{"100":3,"50":1}'`)
	notes := fs.String("notes", "", "Free-text notes")
	dateStr := fs.String("date", "", "Manual date (YYYY-MM-DD), defaults to now")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}
	if *location == "" {
		log.Fatal().Msg("Error: --location is required")
	}

	draft := domain.Draft{
		Type:          domain.TransactionType(*txType),
		PaymentMethod: domain.PaymentMethod(*method),
		Company:       *company,
		Person:        *person,
		Location:      *location,
		RecordedBy:    *userID,
		Amount:        *amount,
		Notes:         *notes,
	}

	if *breakdownJSON != "" {
		if err := json.Unmarshal([]byte(*breakdownJSON), &draft.Breakdown); err != nil {
			log.Fatal().Err(err).Msg("Error: invalid --breakdown JSON")
		}
	}
	if *dateStr != "" {
		d, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			log.Fatal().Err(err).Str("date", *dateStr).Msg("Error: invalid --date format, expected YYYY-MM-DD")
		}
		draft.Date = d
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := openApp(ctx, log, *userID, true)
	defer a.Teardown(ctx)

	tx, err := a.AddTransaction(ctx, draft)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to record transaction")
	}

	fmt.Printf("Recorded %s %s of %.2f (id %s)\n", tx.Type, tx.PaymentMethod, tx.Amount, tx.ID)
}

func runList(log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	userID := fs.String("user", "", "User ID (required)")
	admin := fs.Bool("admin", false, "See all users' transactions")
	limit := fs.Int("limit", 20, "Maximum rows to print (0 = all)")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := openApp(ctx, log, *userID, *admin)
	defer a.Teardown(ctx)

	txs := a.Transactions()
	if *limit > 0 && len(txs) > *limit {
		txs = txs[:*limit]
	}
	for _, tx := range txs {
		fmt.Printf("%s  %-6s %-4s %10.2f  %-12s %s\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.PaymentMethod, tx.Amount, tx.Location, tx.ID)
	}
	fmt.Printf("%d transaction(s)\n", len(txs))
}

func runVault(log zerolog.Logger) {
	fs := flag.NewFlagSet("vault", flag.ExitOnError)
	userID := fs.String("user", "", "User ID (required)")
	admin := fs.Bool("admin", false, "Vault across all users")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := openApp(ctx, log, *userID, *admin)
	defer a.Teardown(ctx)

	vault := a.Vault()
	var total float64
	// Largest notes first, matching the vault display everywhere else.
	for i := len(domain.Denominations) - 1; i >= 0; i-- {
		d := domain.Denominations[i]
		count := vault[d]
		marker := ""
		if count < 0 {
			marker = "  (shortage)"
		}
		fmt.Printf("%5d x %4d%s\n", d, count, marker)
		total += float64(d) * float64(count)
	}
	fmt.Printf("Total: %.2f\n", total)
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	userID := fs.String("user", "", "User ID (required)")
	admin := fs.Bool("admin", false, "Summaries across all users")
	location := fs.String("location", "", "Location to summarize (required)")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}
	if *location == "" {
		log.Fatal().Msg("Error: --location is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := openApp(ctx, log, *userID, *admin)
	defer a.Teardown(ctx)

	txs := a.Transactions()
	for _, s := range summary.ByCompany(txs, *location) {
		fmt.Printf("%-30s credit %12.2f  debit %12.2f  net %12.2f  (%d txns)\n",
			s.DisplayName, s.TotalCredit, s.TotalDebit, s.NetBalance, s.TransactionCount)
	}

	t := summary.Overall(txs)
	fmt.Printf("\nOverall: credit %.2f, debit %.2f, net %.2f (cash %.2f/%.2f, upi %.2f/%.2f)\n",
		t.TotalCredit, t.TotalDebit, t.Net, t.CashCredit, t.CashDebit, t.UPICredit, t.UPIDebit)
}

func runUdhar(log zerolog.Logger) {
	fs := flag.NewFlagSet("udhar", flag.ExitOnError)
	userID := fs.String("user", "", "User ID (required)")
	admin := fs.Bool("admin", false, "Balances across all users")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := openApp(ctx, log, *userID, *admin)
	defer a.Teardown(ctx)

	for _, b := range summary.PersonUdhar(a.Transactions()) {
		fmt.Printf("%-20s credit %12.2f  debit %12.2f  net %12.2f\n",
			b.Person, b.TotalCredit, b.TotalDebit, b.NetBalance)
	}
}

func runCompanies(log zerolog.Logger) {
	fs := flag.NewFlagSet("companies", flag.ExitOnError)
	userID := fs.String("user", "", "User ID (required)")
	add := fs.String("add", "", "Company name to register")
	remove := fs.String("remove", "", "Company name to remove")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a := openApp(ctx, log, *userID, false)
	defer a.Teardown(ctx)

	switch {
	case *add != "":
		if err := a.Ledger().AddCompany(ctx, *add); err != nil {
			log.Fatal().Err(err).Msg("Failed to register company")
		}
		fmt.Printf("Registered %q\n", *add)
	case *remove != "":
		if err := a.Ledger().DeleteCompany(ctx, *remove); err != nil {
			log.Fatal().Err(err).Msg("Failed to remove company")
		}
		fmt.Printf("Removed %q\n", *remove)
	default:
		for _, name := range a.Ledger().Companies() {
			fmt.Println(name)
		}
	}
}
