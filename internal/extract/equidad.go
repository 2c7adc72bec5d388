package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/coerce"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/source"
)

// Equidad mines La Equidad PDF payment advices. Each line carries a 10-digit
// document number, a year, several numeric fields, the invoice number and a
// trailing signed net; credit notation is treated as a positive net and the
// gross reconstructed as net / (1 - 0.02).
type Equidad struct {
	logger *slog.Logger
	pages  int
}

// NewEquidad builds the strategy with the given page budget; pages <= 0
// selects the default.
func NewEquidad(logger *slog.Logger, pages int) *Equidad {
	if logger == nil {
		logger = slog.Default()
	}
	if pages <= 0 {
		pages = defaultPDFPages
	}
	return &Equidad{logger: logger, pages: pages}
}

var (
	equidadFingerprint = regexp.MustCompile(`(?i)LA EQUIDAD SEGUROS`)
	equidadDate        = regexp.MustCompile(`Fecha:\s*(\d{2})\.(\d{2})\.(\d{4})`)

	// The greedy \D+ runs absorb the letter tokens, so the \w{2} group lands
	// on digits; the invoice number is the 8th capture and the signed net the
	// 9th.
	equidadRecord = regexp.MustCompile(`(\d{10})\D+(\d{4})\D+(\w{2})\D+(\d+)\D+(\d+)\D+(\d+)\D+(\S+)\D+(\d+)\D+([-\d.,]+)`)
)

func (e *Equidad) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, e.logger, "equidad", batch, profile, e.extractFile)
}

func (e *Equidad) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	if !f.IsPDF() {
		return nil, &common.ReadError{File: f.Name, Cause: common.ErrInvalidInput}
	}
	texts, err := pageTexts(f.Data, e.pages)
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	if len(texts) == 0 || !equidadFingerprint.MatchString(texts[0]) {
		e.logger.Info("extract.pdf.unrecognized", "payer", "equidad", "file", f.Name)
		return nil, nil
	}
	return e.parseStatement(f.Name, strings.Join(texts, "\n"), profile), nil
}

// parseStatement mines the combined page text for payment advice lines.
func (e *Equidad) parseStatement(file, text string, profile canonical.Profile) []canonical.Row {
	fecha := ""
	if m := equidadDate.FindStringSubmatch(text); m != nil {
		fecha = m[1] + "/" + m[2] + "/" + m[3]
	}

	var rows []canonical.Row
	for _, m := range equidadRecord.FindAllStringSubmatch(text, -1) {
		neto, err := coerce.MoneyEU(strings.ReplaceAll(m[9], "-", ""))
		if err != nil {
			e.logger.Warn("extract.record.skipped", "file", file, "value", m[9], "error", err)
			continue
		}
		bruto := neto.Div(netFactor)
		retef := bruto.Mul(rateRetef).Round(0)
		row := canonical.Row{
			Fecha:           fecha,
			AplicaAFV:       m[8],
			VrFactura:       decimal.Zero,
			VrBruto:         bruto,
			Retef:           retef,
			ICA:             decimal.Zero,
			SumaRetenciones: retef,
			VrRecaudado:     neto,
			Diferencia:      decimal.Zero.Sub(bruto),
		}
		row.Stamp(profile, file)
		rows = append(rows, row)
	}
	return rows
}
