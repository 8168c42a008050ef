// Package quote runs the shipping-rate pass over a record collection.
//
// The loop is strictly sequential: one carrier call per order, a
// self-imposed throttle between calls, and per-order failure isolation —
// a bad postal code or a failed call leaves that order without quote
// fields and the run moves on. Nothing aborts the pass.
package quote

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/pvlabs/yampi2bling/internal/adapters/frenet"
	"github.com/pvlabs/yampi2bling/internal/domain/catalog"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// DefaultInterval is the minimum spacing between carrier calls.
const DefaultInterval = 100 * time.Millisecond

// ProgressUpdate is published after every order, skipped or not.
type ProgressUpdate struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// ProgressFunc receives progress updates during a run.
type ProgressFunc func(ProgressUpdate)

// Result summarizes one quoting pass.
type Result struct {
	QuotedCount  int `json:"quoted_count"`
	SkippedCount int `json:"skipped_count"`
	FailedCount  int `json:"failed_count"`
}

// Engine executes quoting passes against a Quoter.
type Engine struct {
	quoter  frenet.Quoter
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewEngine creates a quote engine. interval spaces consecutive carrier
// calls; zero means DefaultInterval.
func NewEngine(quoter frenet.Quoter, interval time.Duration, logger *slog.Logger) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		quoter:  quoter,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

// Run quotes every record in place. Orders whose postal code does not
// reduce to exactly 8 digits are skipped without an external call; call
// failures are isolated to their order. Progress is reported after each
// order, so skips advance the bar like successes do.
//
// Cancellation is cooperative: the context is checked before each order,
// never mid-call.
func (e *Engine) Run(ctx context.Context, records []pedido.Record, onProgress ProgressFunc) (*Result, error) {
	result := &Result{}
	total := len(records)
	if total == 0 {
		return result, nil
	}

	processed := 0
	report := func() {
		processed++
		if onProgress != nil {
			onProgress(ProgressUpdate{
				Processed: processed,
				Total:     total,
				Percent:   int(math.Round(float64(processed) / float64(total) * 100)),
			})
		}
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("quote run cancelled: %w", err)
		}

		rec := &records[i]

		cep := rec.CEPDigits()
		if len(cep) != 8 {
			e.logger.Debug("skipping order with invalid CEP", "order_id", rec.ID, "cep", rec.EntregaCEP)
			result.SkippedCount++
			report()
			continue
		}

		kit := catalog.Resolve(rec.SKU, rec.Produto)
		dims := catalog.Dimensions(kit.Name)
		qty := rec.Quantity()

		if err := e.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("quote run cancelled: %w", err)
		}

		resp, err := e.quoter.Quote(ctx, frenet.QuoteRequest{
			RecipientCEP:         cep,
			ShipmentInvoiceValue: kit.Price * qty,
			ShippingItemArray: []frenet.QuoteItem{
				{
					Weight:   dims.Weight,
					Length:   dims.Length,
					Height:   dims.Height,
					Width:    dims.Width,
					Quantity: qty,
					SKU:      rec.SKU,
				},
			},
		})
		if err != nil {
			e.logger.Warn("quote call failed", "order_id", rec.ID, "error", err)
			result.FailedCount++
			report()
			continue
		}

		options := validOptions(resp.ShippingSevicesArray)
		if len(options) == 0 {
			// Same outcome as a failed call: no quote fields attached.
			e.logger.Warn("no valid rate options returned", "order_id", rec.ID, "cep", cep)
			result.FailedCount++
			report()
			continue
		}

		rec.OpcoesFrete = options
		cheapest := options[0]
		rec.FreteSelecionado = &cheapest
		result.QuotedCount++

		e.logger.Debug("order quoted",
			"order_id", rec.ID,
			"options", len(options),
			"cheapest", cheapest.Label(),
			"price", cheapest.Price(),
		)
		report()
	}

	return result, nil
}

// validOptions drops error-flagged entries and sorts ascending by price.
func validOptions(services []pedido.RateOption) []pedido.RateOption {
	options := make([]pedido.RateOption, 0, len(services))
	for _, s := range services {
		if s.Error {
			continue
		}
		options = append(options, s)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Price() < options[j].Price()
	})
	return options
}
