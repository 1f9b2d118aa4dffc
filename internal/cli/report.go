package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/clearledger/recon-backend/internal/adapters/ledgerapi"
	"github.com/clearledger/recon-backend/internal/domain/reconcile"
	"github.com/clearledger/recon-backend/internal/infrastructure/config"
	"github.com/clearledger/recon-backend/internal/infrastructure/logging"
)

// ReportFlags holds the CLI flags for the reconcile command.
type ReportFlags struct {
	StatementID string
	Verbose     bool
}

// ParseReportFlags parses command line flags for the reconcile command.
func ParseReportFlags() *ReportFlags {
	flags := &ReportFlags{}
	flag.StringVar(&flags.StatementID, "statement", "", "Only report this statement id")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// RunReport fetches the company's transactions and prints a reconciliation
// report per statement.
func RunReport(cfg *config.Config, flags *ReportFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "recon")

	client := ledgerapi.New(cfg.Upstream.BaseURL, cfg.Upstream.CompanyID, cfg.Upstream.APIKey, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	txns, err := client.ListTransactions(ctx, ledgerapi.ListParams{})
	if err != nil {
		return fmt.Errorf("fetching transactions: %w", err)
	}
	logger.Info("fetched transactions", "count", len(txns))

	// Collect every statement id referenced by a link or an import.
	ids := make(map[string]bool)
	for _, t := range txns {
		if t.StatementID != "" {
			ids[t.StatementID] = true
		}
		for _, link := range t.LinkedStatements {
			ids[link.Statement.ID()] = true
		}
	}
	if flags.StatementID != "" {
		if !ids[flags.StatementID] {
			return fmt.Errorf("statement %s not referenced by any transaction", flags.StatementID)
		}
		ids = map[string]bool{flags.StatementID: true}
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	cfgRecon := reconcile.DefaultConfig()
	for _, id := range sorted {
		summary := reconcile.ReconcileStatement(cfgRecon, id, txns, nil)
		printSummary(summary)
	}

	return nil
}

func printSummary(s reconcile.Summary) {
	fmt.Printf("statement %s\n", s.StatementID)
	fmt.Printf("  total:        %10.2f\n", s.StatementTotal)
	fmt.Printf("  payments:     %10.2f (%d transaction(s))\n", s.TotalBankPayments, s.LinkedTransactionCount)
	fmt.Printf("  adjustments:  %10.2f\n", s.TotalAdjustments)
	fmt.Printf("  difference:   %10.2f  [%s]\n\n", s.CombinedDifference, s.Status)
}
