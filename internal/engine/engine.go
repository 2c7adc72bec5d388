// Package engine dispatches a batch to the payer's extraction strategy and
// assembles the canonical table handed to the export collaborator.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/extract"
	"github.com/vallesalud/cartera/internal/source"
)

// Engine coordinates one synchronous batch: registry lookup, sequential
// extraction, table assembly.
type Engine struct {
	logger   *slog.Logger
	registry extract.Registry
}

// New returns an engine with every known payer registered. pdfPages caps the
// statement pages the PDF-mining payers read; <= 0 selects the default.
func New(logger *slog.Logger, pdfPages int) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, registry: extract.NewRegistry(logger, pdfPages)}
}

// Register binds a strategy to payer display names, replacing any previous
// binding. Used to plug new payers in without touching the engine.
func (e *Engine) Register(ext extract.Extractor, names ...string) {
	e.registry.Register(ext, names...)
}

// Process runs the batch through the strategy registered for the payer and
// returns the canonical table plus the contained-failure report. Files are
// processed strictly in upload order. Only an unregistered payer name is a
// caller error; everything file-level lands in the report.
func (e *Engine) Process(ctx context.Context, payer string, batch []source.File, profile canonical.Profile) (*canonical.Table, *extract.Report, error) {
	ext, ok := e.registry.Lookup(payer)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", common.ErrUnknownPayer, payer)
	}

	batchID := uuid.New()
	logger := e.logger.With("batch_id", batchID, "payer", payer)
	logger.Info("batch.start", "files", len(batch))

	rows, report, err := ext.Extract(ctx, batch, profile)
	if err != nil {
		return nil, report, err
	}

	table := canonical.NewTable()
	table.Append(rows...)
	if table.Empty() {
		logger.Info("batch.empty")
	}
	logger.Info("batch.done", "rows", len(table.Rows), "warnings", len(report.Warnings))
	return table, report, nil
}
