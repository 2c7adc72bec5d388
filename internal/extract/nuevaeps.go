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

// NuevaEPS extracts the Nueva EPS legalization report: one applied amount
// per invoice, with the generic 2% services withholding and no municipal
// retention.
type NuevaEPS struct {
	logger *slog.Logger
}

func NewNuevaEPS(logger *slog.Logger) *NuevaEPS {
	if logger == nil {
		logger = slog.Default()
	}
	return &NuevaEPS{logger: logger}
}

func (n *NuevaEPS) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, n.logger, "nuevaeps", batch, profile, n.extractFile)
}

func (n *NuevaEPS) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	grid, err := source.ExcelGrid(f, "")
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	g := layout.Grid(grid)
	sch, missing := detect(g.Headers(0), nuevaEPSSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(0), sch, profile)
}

var nuevaEPSSchemas = []schema{
	{
		tag:      "legalizaciones",
		required: []string{"Fecha Legalización", "Número Factura", "Valor Aplicación"},
		mapRow:   nuevaEPSMap,
	},
}

func nuevaEPSMap(file string, rec layout.Record) (canonical.Row, error) {
	valor, err := money(file, "Valor Aplicación", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	retef := valor.Mul(rateRetef).Round(0)
	return canonical.Row{
		Fecha:           coerce.Date(rec.Get("Fecha Legalización")),
		AplicaAFV:       rec.Get("Número Factura"),
		VrFactura:       valor,
		VrBruto:         valor,
		Retef:           retef,
		ICA:             decimal.Zero,
		SumaRetenciones: retef,
		VrRecaudado:     valor.Sub(retef),
		Diferencia:      decimal.Zero,
	}, nil
}
