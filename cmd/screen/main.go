// Command screen loads the treasury screen over HTTP and renders it to the
// terminal: the metric cards, then the filtered transaction table. Filters
// are taken from flags and applied client-side, exactly as the screen does.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"tresoria/internal/api"
	"tresoria/internal/config"
	"tresoria/internal/ledger"
	"tresoria/internal/logger"
	"tresoria/internal/screen"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	var (
		from         = flag.String("from", "", "only transactions on or after this date (YYYY-MM-DD)")
		to           = flag.String("to", "", "only transactions on or before this date (YYYY-MM-DD)")
		minAmount    = flag.String("min", "", "minimum signed amount")
		maxAmount    = flag.String("max", "", "maximum signed amount")
		categories   = flag.String("categories", "", "comma-separated category names")
		fournisseurs = flag.String("fournisseurs", "", "comma-separated fournisseur names")
		search       = flag.String("search", "", "case-insensitive description substring")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := api.NewClient(cfg.APIBaseURL, cfg.CompanyID, httpClient)
	view := screen.New(client, screen.Options{
		ToastDuration: cfg.ToastDuration,
		BulkMode:      cfg.BulkMode,
	}, logger.Get())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := view.Load(ctx); err != nil {
		return fmt.Errorf("failed to load the treasury screen: %w", err)
	}

	criteria, err := buildCriteria(view, *from, *to, *minAmount, *maxAmount, *categories, *fournisseurs, *search)
	if err != nil {
		return err
	}
	view.SetCriteria(criteria)

	metrics := view.Metrics()
	fmt.Printf("Revenus: %s   Dépenses: %s   Solde: %s\n\n",
		ledger.FormatEUR(metrics.Revenue),
		ledger.FormatEUR(metrics.Expense),
		ledger.FormatEUR(metrics.Balance))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tFOURNISSEUR\tDESCRIPTION\tCATÉGORIE\tMONTANT")
	for _, t := range view.Filtered() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format("2006-01-02"),
			t.Fournisseur,
			t.Description,
			view.CategoryName(t.CategoryID),
			ledger.FormatEUR(t.Amount))
	}
	return w.Flush()
}

// buildCriteria converts flag values into screen filter criteria. Category
// flags are names; they resolve to ids through the loaded category store.
func buildCriteria(view *screen.Screen, from, to, minAmount, maxAmount, categories, fournisseurs, search string) (ledger.Criteria, error) {
	var criteria ledger.Criteria

	if from != "" {
		date, err := time.Parse("2006-01-02", from)
		if err != nil {
			return criteria, fmt.Errorf("invalid -from date: %w", err)
		}
		criteria.From = &date
	}
	if to != "" {
		date, err := time.Parse("2006-01-02", to)
		if err != nil {
			return criteria, fmt.Errorf("invalid -to date: %w", err)
		}
		criteria.To = &date
	}
	if minAmount != "" {
		amount, err := decimal.NewFromString(minAmount)
		if err != nil {
			return criteria, fmt.Errorf("invalid -min amount: %w", err)
		}
		criteria.MinAmount = &amount
	}
	if maxAmount != "" {
		amount, err := decimal.NewFromString(maxAmount)
		if err != nil {
			return criteria, fmt.Errorf("invalid -max amount: %w", err)
		}
		criteria.MaxAmount = &amount
	}

	if categories != "" {
		byName := make(map[string]string)
		for _, c := range view.Categories() {
			byName[c.Name] = c.ID
		}
		for _, name := range splitList(categories) {
			id, ok := byName[name]
			if !ok {
				return criteria, fmt.Errorf("unknown category %q", name)
			}
			criteria.CategoryIDs = append(criteria.CategoryIDs, id)
		}
	}

	criteria.Fournisseurs = splitList(fournisseurs)
	criteria.Search = search
	return criteria, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
