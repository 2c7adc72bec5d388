package extract

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/layout"
	"github.com/vallesalud/cartera/internal/source"
)

// ADRES extracts the claims settlement workbook of the national health fund.
// The sheet carries five preamble rows before the header, and the retention
// is split by service class: 2% medical services, 11% professional fees,
// 2.5% purchases.
type ADRES struct {
	logger *slog.Logger
}

func NewADRES(logger *slog.Logger) *ADRES {
	if logger == nil {
		logger = slog.Default()
	}
	return &ADRES{logger: logger}
}

const adresHeaderRow = 5

func (a *ADRES) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, a.logger, "adres", batch, profile, a.extractFile)
}

func (a *ADRES) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	grid, err := source.ExcelGrid(f, "Hoja1")
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	g := layout.Grid(grid)
	sch, missing := detect(g.Headers(adresHeaderRow), adresSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(adresHeaderRow), sch, profile)
}

var adresSchemas = []schema{
	{
		tag: "reclamaciones",
		required: []string{
			"Numero Paquete", "Factura", "Valor Reclamado", "Valor aprobado",
			"Valor glosado", "Servicios médicos", "Honorarios", "Compras",
		},
		mapRow: adresMap,
	},
}

func adresMap(file string, rec layout.Record) (canonical.Row, error) {
	reclamado, err := money(file, "Valor Reclamado", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	aprobado, err := money(file, "Valor aprobado", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	servicios, err := money(file, "Servicios médicos", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	honorarios, err := money(file, "Honorarios", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	compras, err := money(file, "Compras", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	retencion := servicios.Mul(rateRetef).
		Add(honorarios.Mul(rateHonorario)).
		Add(compras.Mul(rateCompras))
	return canonical.Row{
		AplicaAFV:       rec.Get("Factura"),
		VrFactura:       reclamado,
		VrBruto:         aprobado,
		Retef:           decimal.Zero,
		ICA:             decimal.Zero,
		SumaRetenciones: retencion,
		VrRecaudado:     aprobado.Sub(retencion),
		Diferencia:      reclamado.Sub(aprobado),
	}, nil
}
