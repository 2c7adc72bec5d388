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

// Liberty extracts Liberty Seguros payment reports. The workbook and CSV
// feeds carry the same fields under different column names; ICA is never
// reported and stays zero.
type Liberty struct {
	logger *slog.Logger
}

func NewLiberty(logger *slog.Logger) *Liberty {
	if logger == nil {
		logger = slog.Default()
	}
	return &Liberty{logger: logger}
}

func (l *Liberty) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, l.logger, "liberty", batch, profile, l.extractFile)
}

func (l *Liberty) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	var g layout.Grid
	if f.IsCSV() {
		grid, err := source.CSVGrid(f, ',', false)
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
	sch, missing := detect(g.Headers(0), libertySchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(0), sch, profile)
}

var libertySchemas = []schema{
	{
		tag:      "giros",
		required: []string{"FECHA GIRO", "NRO FACTURA", "VALOR LIQUIDADO", "VALOR RETEFUENTE", "VALOR PAGADO"},
		mapRow: libertyMap("FECHA GIRO", "NRO FACTURA",
			"VALOR LIQUIDADO", "VALOR RETEFUENTE", "VALOR PAGADO"),
	},
	{
		tag:      "giros-csv",
		required: []string{"Fecha_Pago", "No_Factura", "Valor_Base", "Valor_Ret", "Valor_Pagado"},
		mapRow: libertyMap("Fecha_Pago", "No_Factura",
			"Valor_Base", "Valor_Ret", "Valor_Pagado"),
	},
}

func libertyMap(fechaCol, facturaCol, liquidadoCol, retefCol, pagadoCol string) func(string, layout.Record) (canonical.Row, error) {
	return func(file string, rec layout.Record) (canonical.Row, error) {
		liquidado, err := money(file, liquidadoCol, rec)
		if err != nil {
			return canonical.Row{}, err
		}
		retef, err := money(file, retefCol, rec)
		if err != nil {
			return canonical.Row{}, err
		}
		pagado, err := money(file, pagadoCol, rec)
		if err != nil {
			return canonical.Row{}, err
		}
		return canonical.Row{
			Fecha:           coerce.Date(rec.Get(fechaCol)),
			AplicaAFV:       rec.Get(facturaCol),
			VrFactura:       liquidado,
			VrBruto:         liquidado,
			Retef:           retef,
			ICA:             decimal.Zero,
			SumaRetenciones: retef,
			VrRecaudado:     pagado,
			Diferencia:      decimal.Zero,
		}, nil
	}
}
