// Package extract holds the per-payer extraction strategies: layout
// detection, field mapping with the payer's derived-value formulas, and the
// PDF text-mining payers.
package extract

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/coerce"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/layout"
	"github.com/vallesalud/cartera/internal/source"
)

// Extractor is one payer's strategy over an uploaded batch: zero or more
// canonical rows per file, with per-file failures contained in the report.
type Extractor interface {
	Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error)
}

// Withholding rates fixed by the payers' settlement rules.
var (
	rateRetef     = decimal.NewFromFloat(0.02)   // source withholding on services
	rateICA       = decimal.NewFromFloat(0.0066) // municipal withholding (PDF statements)
	rateHonorario = decimal.NewFromFloat(0.11)
	rateCompras   = decimal.NewFromFloat(0.025)
	netFactor     = decimal.NewFromFloat(0.98) // net = gross * (1 - 0.02)
)

// Warning is one contained per-file failure.
type Warning struct {
	File string
	Err  error
}

// Report collects the failures contained during one batch so the caller can
// surface them instead of reading console output.
type Report struct {
	Warnings []Warning
}

func (r *Report) add(file string, err error) {
	r.Warnings = append(r.Warnings, Warning{File: file, Err: err})
}

// HasWarnings reports whether any file was skipped or partially processed.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// fileFunc extracts one file's rows. Returned errors are contained per file.
type fileFunc func(f source.File, profile canonical.Profile) ([]canonical.Row, error)

// runBatch applies fn to each file in upload order. A failing file is logged
// and reported, never aborting the rest of the batch.
func runBatch(ctx context.Context, logger *slog.Logger, payer string, batch []source.File, profile canonical.Profile, fn fileFunc) ([]canonical.Row, *Report, error) {
	rep := &Report{}
	var rows []canonical.Row
	for _, f := range batch {
		if err := ctx.Err(); err != nil {
			return rows, rep, err
		}
		out, err := fn(f, profile)
		if err != nil {
			logger.Warn("extract.file.skipped", "payer", payer, "file", f.Name, "error", err)
			rep.add(f.Name, err)
			continue
		}
		rows = append(rows, out...)
	}
	return rows, rep, nil
}

// schema is one candidate layout: the columns that must all be present and
// the mapper applying this layout's formulas. Candidates are tried in slice
// order; the first full match wins.
type schema struct {
	tag      string
	required []string
	mapRow   func(file string, rec layout.Record) (canonical.Row, error)
}

// detect returns the first schema whose required columns are all present.
// When none match, the columns missing from the highest-priority candidate
// are returned for the warning.
func detect(headers []string, candidates []schema) (*schema, []string) {
	for i := range candidates {
		if len(layout.Missing(headers, candidates[i].required)) == 0 {
			return &candidates[i], nil
		}
	}
	return nil, layout.Missing(headers, candidates[0].required)
}

// mapRecords runs a schema's mapper over every record, stamping the payer
// constants. A record that fails coercion aborts the file; the batch runner
// contains it.
func mapRecords(file string, recs []layout.Record, sch *schema, profile canonical.Profile) ([]canonical.Row, error) {
	var rows []canonical.Row
	for _, rec := range recs {
		row, err := sch.mapRow(file, rec)
		if err != nil {
			return nil, err
		}
		row.Stamp(profile, file)
		rows = append(rows, row)
	}
	return rows, nil
}

// money coerces a cell with file/column context attached on failure. Blank
// cells coerce to zero, matching the fill-absent-with-default policy.
func money(file, col string, rec layout.Record) (decimal.Decimal, error) {
	raw := rec.Get(col)
	d, err := coerce.Money(raw)
	if err != nil {
		return decimal.Zero, &common.ParseError{File: file, Column: col, Value: raw, Cause: err}
	}
	return d, nil
}
