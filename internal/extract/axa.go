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

// AXA extracts the AXA Colpatria payment spreadsheets. Three layouts are
// known; the two "before/after tax" layouts derive the withholdings from the
// payment delta, the third carries explicit retention columns.
type AXA struct {
	logger *slog.Logger
}

func NewAXA(logger *slog.Logger) *AXA {
	if logger == nil {
		logger = slog.Default()
	}
	return &AXA{logger: logger}
}

func (a *AXA) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, a.logger, "axa", batch, profile, a.extractFile)
}

func (a *AXA) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	grid, err := source.ExcelGrid(f, "")
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	g := layout.Grid(grid)
	sch, missing := detect(g.Headers(0), axaSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(0), sch, profile)
}

var axaSchemas = []schema{
	{
		tag:      "pagos",
		required: []string{"Fecha de Pago", "N° Factura", "Valor Pagado Antes de Imp.", "Valor Pagado Despues de Imp."},
		mapRow: axaDelta("Fecha de Pago", "N° Factura",
			"Valor Pagado Antes de Imp.", "Valor Pagado Despues de Imp."),
	},
	{
		tag:      "pagos-mayusculas",
		required: []string{"No. FACTURA", "FECHA DE PAGO", "VALOR PAGADO DESPUES DE IMPUESTO", "VALOR PAGADO ANTES DE IMPUESTO"},
		mapRow: axaDelta("FECHA DE PAGO", "No. FACTURA",
			"VALOR PAGADO ANTES DE IMPUESTO", "VALOR PAGADO DESPUES DE IMPUESTO"),
	},
	{
		tag:      "retenciones",
		required: []string{"FECHA_PAGO", "N° Factura", "Valor Pagado Antes de Imp.", "Valor Pagado Despues de Imp.", "RTE_FUENTE", "RETE_ICA", "RETE_IVA"},
		mapRow:   axaExplicit,
	},
}

// axaDelta builds the mapper for layouts reporting only gross and net: the
// total retention is the payment delta, RETEF is the 2% services proxy, and
// ICA absorbs the remainder.
func axaDelta(fechaCol, facturaCol, antesCol, despuesCol string) func(string, layout.Record) (canonical.Row, error) {
	return func(file string, rec layout.Record) (canonical.Row, error) {
		antes, err := money(file, antesCol, rec)
		if err != nil {
			return canonical.Row{}, err
		}
		despues, err := money(file, despuesCol, rec)
		if err != nil {
			return canonical.Row{}, err
		}
		retencion := antes.Sub(despues)
		retef := antes.Mul(rateRetef).Round(0)
		return canonical.Row{
			Fecha:           coerce.Date(rec.Get(fechaCol)),
			AplicaAFV:       rec.Get(facturaCol),
			VrFactura:       antes,
			VrBruto:         antes,
			Retef:           retef,
			ICA:             retencion.Sub(retef),
			SumaRetenciones: retencion,
			VrRecaudado:     despues,
			Diferencia:      decimal.Zero,
		}, nil
	}
}

// axaExplicit maps the layout that carries its own retention columns.
func axaExplicit(file string, rec layout.Record) (canonical.Row, error) {
	antes, err := money(file, "Valor Pagado Antes de Imp.", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	despues, err := money(file, "Valor Pagado Despues de Imp.", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	retef, err := money(file, "RTE_FUENTE", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	ica, err := money(file, "RETE_ICA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	iva, err := money(file, "RETE_IVA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	return canonical.Row{
		Fecha:           coerce.Date(rec.Get("FECHA_PAGO")),
		AplicaAFV:       rec.Get("N° Factura"),
		VrFactura:       antes,
		VrBruto:         antes,
		Retef:           retef,
		ICA:             ica,
		IVA:             iva,
		SumaRetenciones: antes.Sub(despues),
		VrRecaudado:     despues,
		Diferencia:      decimal.Zero,
	}, nil
}
