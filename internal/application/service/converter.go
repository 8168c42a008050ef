// Package service owns the in-memory conversion session: the canonical
// record collection, the quote-run state machine and the export snapshots.
//
// The record collection has exactly one writer at a time: the quote engine
// during a run, the operator's selection between runs. The service
// enforces that discipline by rejecting edits while a run is active and
// by handing the engine its own working copy, swapped back on completion.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pvlabs/yampi2bling/internal/adapters/bling"
	"github.com/pvlabs/yampi2bling/internal/application/quote"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
	"github.com/pvlabs/yampi2bling/internal/domain/stats"
)

// Status is the quote-run state machine.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
)

var (
	// ErrNoRecords means no file has been loaded yet.
	ErrNoRecords = errors.New("service: no records loaded")
	// ErrQuoteRunning means a quote run is active and edits are rejected.
	ErrQuoteRunning = errors.New("service: quote run in progress")
)

// QuoteJob describes the current or last quote run.
type QuoteJob struct {
	ID          string               `json:"id,omitempty"`
	Status      Status               `json:"status"`
	Progress    quote.ProgressUpdate `json:"progress"`
	Result      *quote.Result        `json:"result,omitempty"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// Converter manages one conversion session.
type Converter struct {
	engine *quote.Engine
	logger *slog.Logger

	mu      sync.RWMutex
	records []pedido.Record
	job     QuoteJob

	now func() time.Time
}

// NewConverter creates a converter service around a quote engine.
func NewConverter(engine *quote.Engine, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Converter{
		engine: engine,
		logger: logger,
		job:    QuoteJob{Status: StatusIdle},
		now:    time.Now,
	}
}

// LoadRecords replaces the session's record collection and resets the
// quote state machine. Rejected while a run is active.
func (c *Converter) LoadRecords(records []pedido.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.job.Status == StatusRunning {
		return ErrQuoteRunning
	}

	c.records = records
	c.job = QuoteJob{Status: StatusIdle}

	c.logger.Info("records loaded", "count", len(records))
	return nil
}

// Records returns a snapshot of the current record collection.
func (c *Converter) Records() []pedido.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]pedido.Record, len(c.records))
	copy(snapshot, c.records)
	return snapshot
}

// StartQuote starts an asynchronous quote run over the loaded records.
// The run uses context.Background so it is not tied to the HTTP request
// that triggered it.
func (c *Converter) StartQuote() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.records) == 0 {
		return "", ErrNoRecords
	}
	if c.job.Status == StatusRunning {
		return "", ErrQuoteRunning
	}

	jobID := uuid.NewString()
	started := c.now()
	c.job = QuoteJob{
		ID:        jobID,
		Status:    StatusRunning,
		StartedAt: &started,
		Progress:  quote.ProgressUpdate{Total: len(c.records)},
	}

	// The engine works on its own copy; readers keep seeing the
	// pre-run collection until the run completes.
	working := make([]pedido.Record, len(c.records))
	copy(working, c.records)

	go c.runQuoteJob(jobID, working)

	c.logger.Info("quote run started", "job_id", jobID, "orders", len(working))
	return jobID, nil
}

// runQuoteJob executes the quote pass in a background goroutine.
func (c *Converter) runQuoteJob(jobID string, working []pedido.Record) {
	result, err := c.engine.Run(context.Background(), working, func(u quote.ProgressUpdate) {
		c.mu.Lock()
		if c.job.ID == jobID {
			c.job.Progress = u
		}
		c.mu.Unlock()
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	// The session may have been reloaded mid-run; stale results are
	// discarded.
	if c.job.ID != jobID {
		c.logger.Warn("discarding quote results for superseded job", "job_id", jobID)
		return
	}

	completed := c.now()
	c.records = working
	c.job.Status = StatusDone
	c.job.Result = result
	c.job.CompletedAt = &completed

	if err != nil {
		c.logger.Error("quote run ended early", "job_id", jobID, "error", err)
		return
	}

	c.logger.Info("quote run completed",
		"job_id", jobID,
		"quoted", result.QuotedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
}

// QuoteStatus returns the current quote-run state.
func (c *Converter) QuoteStatus() QuoteJob {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.job
}

// SelectFrete overrides the selected rate option for one order. Allowed
// any time after a run completes; rejected while one is active.
func (c *Converter) SelectFrete(recordIdx, optionIdx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.job.Status == StatusRunning {
		return ErrQuoteRunning
	}
	if recordIdx < 0 || recordIdx >= len(c.records) {
		return errors.New("service: record index out of range")
	}

	return c.records[recordIdx].SelectFrete(optionIdx)
}

// Stats recomputes the run statistics from the current collection.
func (c *Converter) Stats() stats.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stats.Compute(c.records)
}

// ExportWorkbook writes the Bling import workbook and returns its file
// name.
func (c *Converter) ExportWorkbook(w io.Writer) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.records) == 0 {
		return "", ErrNoRecords
	}

	now := c.now()
	if err := bling.WriteWorkbook(w, c.records, now); err != nil {
		return "", err
	}
	return bling.ExportFileName(now, len(c.records)), nil
}

// ExportBackup writes the JSON backup of the full record collection.
func (c *Converter) ExportBackup(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.records) == 0 {
		return ErrNoRecords
	}
	return bling.WriteBackup(w, c.records)
}
