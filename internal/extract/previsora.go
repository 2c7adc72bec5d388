package extract

import (
	"context"
	"log/slog"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/coerce"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/layout"
	"github.com/vallesalud/cartera/internal/source"
)

// Previsora extracts La Previsora settlement workbooks. The claims-report
// variant buries the transfer date as a labeled cell inside the grid and
// puts the real header several preamble rows down; the payment-detail
// variant is a plain table.
type Previsora struct {
	logger *slog.Logger
}

func NewPrevisora(logger *slog.Logger) *Previsora {
	if logger == nil {
		logger = slog.Default()
	}
	return &Previsora{logger: logger}
}

const (
	previsoraMarker     = "RECLAMANTE:"
	previsoraMarkerScan = 10 // preamble rows inspected for the variant marker
	previsoraDateLabel  = "FECHA DE TRANSFERENCIA O DE CHEQUE:"
	previsoraHeaderCell = "N°. Doc. de cobro"
)

func (p *Previsora) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, p.logger, "previsora", batch, profile, p.extractFile)
}

func (p *Previsora) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	grid, err := source.ExcelGrid(f, "")
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	g := layout.Grid(grid)

	if row, _, ok := g.Find(previsoraMarker); ok && row < previsoraMarkerScan {
		return p.extractClaims(f.Name, g, profile)
	}
	return p.extractPayments(f.Name, g, profile)
}

var previsoraClaimsRequired = []string{
	previsoraHeaderCell, "Valor Reclamado", "Valor pagado", "Valor Objetado",
	"I.V.A.", "Retención en la fuente", "I.C.A. - ImP. Ind y Ccio",
}

// extractClaims handles the variant with embedded metadata: the transfer
// date is read from the cell next to its label and back-filled onto every
// data row of the file.
func (p *Previsora) extractClaims(file string, g layout.Grid, profile canonical.Profile) ([]canonical.Row, error) {
	fecha := ""
	if row, col, ok := g.Find(previsoraDateLabel); ok {
		fecha = coerce.Date(g.Cell(row, col+1))
	}

	headerRow := g.HeaderRow(previsoraHeaderCell)
	if headerRow < 0 {
		return nil, &common.SchemaMismatchError{File: file, Missing: previsoraClaimsRequired}
	}
	if missing := layout.Missing(g.Headers(headerRow), previsoraClaimsRequired); len(missing) > 0 {
		return nil, &common.SchemaMismatchError{File: file, Missing: missing}
	}

	var rows []canonical.Row
	for _, rec := range g.Records(headerRow) {
		if incomplete(rec, previsoraClaimsRequired) {
			continue
		}
		reclamado, err := money(file, "Valor Reclamado", rec)
		if err != nil {
			return nil, err
		}
		pagado, err := money(file, "Valor pagado", rec)
		if err != nil {
			return nil, err
		}
		iva, err := money(file, "I.V.A.", rec)
		if err != nil {
			return nil, err
		}
		retef, err := money(file, "Retención en la fuente", rec)
		if err != nil {
			return nil, err
		}
		ica, err := money(file, "I.C.A. - ImP. Ind y Ccio", rec)
		if err != nil {
			return nil, err
		}
		suma := retef.Add(ica)
		row := canonical.Row{
			Fecha:           fecha,
			AplicaAFV:       rec.Get(previsoraHeaderCell),
			VrFactura:       reclamado,
			VrBruto:         pagado,
			Retef:           retef,
			ICA:             ica,
			IVA:             iva,
			SumaRetenciones: suma,
			VrRecaudado:     pagado.Sub(suma),
			Diferencia:      reclamado.Sub(pagado),
		}
		row.Stamp(profile, file)
		rows = append(rows, row)
	}
	return rows, nil
}

var previsoraPaymentSchemas = []schema{
	{
		tag: "detalle-pagos",
		required: []string{
			"Fecha", "Factura", "Valor_Factura", "Este_Pago",
			"ImpValorIVA", "ImpValorReteICA", "ImpValorReteFuente",
		},
		mapRow: previsoraPaymentMap,
	},
}

func (p *Previsora) extractPayments(file string, g layout.Grid, profile canonical.Profile) ([]canonical.Row, error) {
	sch, missing := detect(g.Headers(0), previsoraPaymentSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: file, Missing: missing}
	}
	return mapRecords(file, g.Records(0), sch, profile)
}

func previsoraPaymentMap(file string, rec layout.Record) (canonical.Row, error) {
	factura, err := money(file, "Valor_Factura", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	pago, err := money(file, "Este_Pago", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	iva, err := money(file, "ImpValorIVA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	ica, err := money(file, "ImpValorReteICA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	retef, err := money(file, "ImpValorReteFuente", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	suma := retef.Add(ica)
	return canonical.Row{
		Fecha:           coerce.Date(rec.Get("Fecha")),
		AplicaAFV:       rec.Get("Factura"),
		VrFactura:       factura,
		VrBruto:         pago,
		Retef:           retef,
		ICA:             ica,
		IVA:             iva,
		SumaRetenciones: suma,
		VrRecaudado:     pago.Sub(suma),
		Diferencia:      factura.Sub(pago),
	}, nil
}

// incomplete reports whether any required field of the record is blank,
// filtering the summary/total rows below the claims table.
func incomplete(rec layout.Record, required []string) bool {
	for _, col := range required {
		if rec.Get(col) == "" {
			return true
		}
	}
	return false
}
