package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pvlabs/yampi2bling/internal/adapters/bling"
	"github.com/pvlabs/yampi2bling/internal/adapters/frenet"
	"github.com/pvlabs/yampi2bling/internal/adapters/yampi"
	"github.com/pvlabs/yampi2bling/internal/application/quote"
	"github.com/pvlabs/yampi2bling/internal/domain/catalog"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
	"github.com/pvlabs/yampi2bling/internal/domain/stats"
	"github.com/pvlabs/yampi2bling/internal/infrastructure/config"
	"github.com/pvlabs/yampi2bling/internal/infrastructure/logging"
)

func main() {
	var (
		input      = flag.String("input", "", "Order export file (.csv or .xlsx)")
		outDir     = flag.String("out-dir", ".", "Directory for the generated files")
		withQuote  = flag.Bool("quote", false, "Recalculate freight through Frenet before exporting")
		configFile = flag.String("config", "", "Configuration file path")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := loadConfig(*configFile)
	if *verbose {
		cfg.Observability.Logging.Level = slog.LevelDebug.String()
	}
	logger := logging.NewLogger(cfg.Observability.Logging)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: convert -input pedidos.csv [-out-dir dir] [-quote]")
		os.Exit(2)
	}

	records, err := parseInput(*input)
	if err != nil {
		logger.Error("Failed to parse export", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Export parsed", "file", *input, "orders", len(records))

	if *withQuote {
		quoteRecords(cfg, records, logger)
	}

	now := time.Now()
	xlsxPath := filepath.Join(*outDir, bling.ExportFileName(now, len(records)))
	if err := writeWorkbook(xlsxPath, records, now); err != nil {
		logger.Error("Failed to write workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	backupPath := filepath.Join(*outDir, bling.BackupFileName)
	if err := writeBackup(backupPath, records); err != nil {
		logger.Error("Failed to write backup", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(records, xlsxPath, backupPath)
}

func loadConfig(path string) *config.Config {
	if path != "" {
		return config.LoadOrEnvWithPath(path)
	}
	return config.LoadOrEnv()
}

// parseInput picks the parser from the file extension.
func parseInput(path string) ([]pedido.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return yampi.ParseWorkbook(f)
	default:
		return yampi.ParseCSV(f)
	}
}

// quoteRecords runs the freight pass in place, logging progress.
func quoteRecords(cfg *config.Config, records []pedido.Record, logger *slog.Logger) {
	client, err := frenet.NewClient(frenet.Config{
		Token:     cfg.Frenet.Token,
		SellerCEP: cfg.Frenet.SellerCEP,
		BaseURL:   cfg.Frenet.BaseURL,
		Timeout:   time.Duration(cfg.Frenet.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Error("Failed to create Frenet client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := quote.NewEngine(
		client,
		time.Duration(cfg.Quote.IntervalMS)*time.Millisecond,
		logger.With("system", "quote"),
	)

	lastPercent := -1
	result, err := engine.Run(context.Background(), records, func(u quote.ProgressUpdate) {
		if u.Percent != lastPercent {
			lastPercent = u.Percent
			logger.Info("Quoting freight", "percent", u.Percent, "processed", u.Processed, "total", u.Total)
		}
	})
	if err != nil {
		logger.Error("Quote run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Quote run completed",
		"quoted", result.QuotedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
}

func writeWorkbook(path string, records []pedido.Record, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return bling.WriteWorkbook(f, records, now)
}

func writeBackup(path string, records []pedido.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return bling.WriteBackup(f, records)
}

func printSummary(records []pedido.Record, xlsxPath, backupPath string) {
	summary := stats.Compute(records)

	fmt.Println()
	fmt.Printf("Pedidos:        %d\n", summary.TotalPedidos)
	for _, name := range kitOrder(summary) {
		fmt.Printf("  %-14s %.0f\n", name, summary.Kits[name])
	}
	fmt.Printf("Produtos:       R$ %.2f\n", summary.TotalProdutos)
	fmt.Printf("Frete:          R$ %.2f\n", summary.TotalFrete)
	fmt.Printf("Desconto:       R$ %.2f\n", summary.TotalDesconto)
	fmt.Printf("Total:          R$ %.2f\n", summary.ValorTotal)
	fmt.Println()
	fmt.Printf("Planilha: %s\n", xlsxPath)
	fmt.Printf("Backup:   %s\n", backupPath)
}

// kitOrder returns the kit names in their catalog order.
func kitOrder(summary stats.Summary) []string {
	names := make([]string, 0, len(summary.Kits))
	for _, name := range catalog.KitNames {
		if _, ok := summary.Kits[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
