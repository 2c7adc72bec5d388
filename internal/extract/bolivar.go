package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/coerce"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/layout"
	"github.com/vallesalud/cartera/internal/source"
)

// Bolivar extracts Seguros Bolívar payment feeds. The feed reports only the
// net payment, so the gross is reconstructed as net / (1 - 0.02) and RETEF
// recomputed from that gross. CSV feeds format amounts as "$1,234" and bury
// the invoice reference as the first token of a free-text detail column.
type Bolivar struct {
	logger *slog.Logger
}

func NewBolivar(logger *slog.Logger) *Bolivar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bolivar{logger: logger}
}

func (b *Bolivar) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, b.logger, "bolivar", batch, profile, b.extractFile)
}

func (b *Bolivar) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	var g layout.Grid
	if f.IsCSV() {
		grid, err := source.CSVGrid(f, ';', true)
		if err != nil {
			return nil, &common.ReadError{File: f.Name, Cause: err}
		}
		g = layout.Grid(grid)
	} else {
		grid, err := source.ExcelGrid(f, "")
		if err != nil {
			return nil, &common.ReadError{File: f.Name, Cause: err}
		}
		g = layout.Grid(grid)
	}
	sch, missing := detect(g.Headers(0), bolivarSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(0), sch, profile)
}

var bolivarSchemas = []schema{
	{
		tag:      "pagos",
		required: []string{"Fecha de Pago", "Detalle", "Rte. ICA", "Rte Fuente", "Valor pago"},
		mapRow:   bolivarMap("Detalle", false),
	},
	{
		tag:      "pagos-csv",
		required: []string{"Fecha de Pago", "Detalles", "Rte. ICA", "Rte Fuente", "Valor pago"},
		mapRow:   bolivarMap("Detalles", true),
	},
}

// bolivarMap builds the mapper. The CSV feed rounds the payment to whole
// pesos and takes the leading token of the free-text detail column as the
// invoice reference; workbook amounts pass through untouched.
func bolivarMap(detalleCol string, csvFeed bool) func(string, layout.Record) (canonical.Row, error) {
	return func(file string, rec layout.Record) (canonical.Row, error) {
		pago, err := money(file, "Valor pago", rec)
		if err != nil {
			return canonical.Row{}, err
		}
		ica, err := money(file, "Rte. ICA", rec)
		if err != nil {
			return canonical.Row{}, err
		}
		detalle := rec.Get(detalleCol)
		if csvFeed {
			pago = pago.Round(0)
			if fields := strings.Fields(detalle); len(fields) > 0 {
				detalle = fields[0]
			}
		}
		bruto := pago.Div(netFactor)
		retef := bruto.Mul(rateRetef).Round(0)
		return canonical.Row{
			Fecha:           coerce.Date(rec.Get("Fecha de Pago")),
			AplicaAFV:       detalle,
			VrFactura:       decimal.Zero,
			VrBruto:         bruto,
			Retef:           retef,
			ICA:             ica,
			SumaRetenciones: retef.Add(ica),
			VrRecaudado:     pago,
			Diferencia:      decimal.Zero.Sub(bruto),
		}, nil
	}
}
