package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/coerce"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/source"
)

// SegEstado mines Seguros del Estado PDF statements. The template is
// identified by its web-address footer; invoice lines repeat as
// "<number> $<gross> $<net>" with European amount formatting.
type SegEstado struct {
	logger *slog.Logger
	pages  int
}

// NewSegEstado builds the strategy with the given page budget; pages <= 0
// selects the default.
func NewSegEstado(logger *slog.Logger, pages int) *SegEstado {
	if logger == nil {
		logger = slog.Default()
	}
	if pages <= 0 {
		pages = defaultPDFPages
	}
	return &SegEstado{logger: logger, pages: pages}
}

var (
	segEstadoFingerprint = regexp.MustCompile(`(?i)www\.sis\.co[.,]`)
	segEstadoRecord      = regexp.MustCompile(`(\d{5,8})\s+\$\s*([\d.,]+)\s+\$\s*([\d.,]+)`)

	// Document date alternatives, in priority order: free-text Spanish date,
	// labeled numeric date, bare numeric date.
	segEstadoDateText    = regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+([a-záéíóúñ]+)\s+de\s+(\d{4})`)
	segEstadoDateLabeled = regexp.MustCompile(`(?i)Fecha\s*[^:]*:\s*(\d{2})-(\d{2})-(\d{4})`)
	segEstadoDateBare    = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
)

func (s *SegEstado) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, s.logger, "segestado", batch, profile, s.extractFile)
}

func (s *SegEstado) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	if !f.IsPDF() {
		return nil, &common.ReadError{File: f.Name, Cause: common.ErrInvalidInput}
	}
	texts, err := pageTexts(f.Data, s.pages)
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	// fingerprint must appear on page one; otherwise this is not a Seguros
	// del Estado statement and the file contributes nothing.
	if len(texts) == 0 || !segEstadoFingerprint.MatchString(texts[0]) {
		s.logger.Info("extract.pdf.unrecognized", "payer", "segestado", "file", f.Name)
		return nil, nil
	}

	return s.parseStatement(f.Name, strings.Join(texts, "\n"), profile), nil
}

// parseStatement mines the combined page text for invoice lines.
func (s *SegEstado) parseStatement(file, text string, profile canonical.Profile) []canonical.Row {
	fecha := segEstadoDate(text)
	var rows []canonical.Row
	for _, m := range segEstadoRecord.FindAllStringSubmatch(text, -1) {
		bruto, err := coerce.MoneyEU(m[2])
		if err != nil {
			s.logger.Warn("extract.record.skipped", "file", file, "value", m[2], "error", err)
			continue
		}
		neto, err := coerce.MoneyEU(m[3])
		if err != nil {
			s.logger.Warn("extract.record.skipped", "file", file, "value", m[3], "error", err)
			continue
		}
		retef := bruto.Mul(rateRetef)
		ica := bruto.Mul(rateICA)
		row := canonical.Row{
			Fecha:           fecha,
			AplicaAFV:       m[1],
			VrFactura:       decimal.Zero,
			VrBruto:         bruto,
			Retef:           retef.Round(2),
			ICA:             ica.Round(0),
			SumaRetenciones: retef.Add(ica).Round(0),
			VrRecaudado:     neto,
			Diferencia:      decimal.Zero.Sub(bruto),
		}
		row.Stamp(profile, file)
		rows = append(rows, row)
	}
	return rows
}

// segEstadoDate resolves the statement date, trying each pattern in priority
// order and assembling DD/MM/YYYY. An unresolved date stays empty rather
// than aborting extraction.
func segEstadoDate(text string) string {
	if m := segEstadoDateText.FindStringSubmatch(text); m != nil {
		if month, ok := coerce.MonthNumber(m[2]); ok {
			return fmt.Sprintf("%s/%s/%s", pad2(m[1]), month, m[3])
		}
	}
	if m := segEstadoDateLabeled.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])
	}
	if m := segEstadoDateBare.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s/%s/%s", pad2(m[1]), pad2(m[2]), m[3])
	}
	return ""
}
