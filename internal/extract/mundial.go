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

// Mundial extracts the Mundial de Seguros settlement workbook: fixed header
// offset, explicit RETEF and ICA columns.
type Mundial struct {
	logger *slog.Logger
}

func NewMundial(logger *slog.Logger) *Mundial {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mundial{logger: logger}
}

const mundialHeaderRow = 5

func (m *Mundial) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, m.logger, "mundial", batch, profile, m.extractFile)
}

func (m *Mundial) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	grid, err := source.ExcelGrid(f, "")
	if err != nil {
		return nil, &common.ReadError{File: f.Name, Cause: err}
	}
	g := layout.Grid(grid)
	sch, missing := detect(g.Headers(mundialHeaderRow), mundialSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(mundialHeaderRow), sch, profile)
}

var mundialSchemas = []schema{
	{
		tag:      "liquidacion",
		required: []string{"FECHA PAGO", "FACTURA", "VALOR RECLAMADO", "VALOR APROBADO", "Rete-Fuente", "ICA"},
		mapRow:   mundialMap,
	},
}

func mundialMap(file string, rec layout.Record) (canonical.Row, error) {
	reclamado, err := money(file, "VALOR RECLAMADO", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	aprobado, err := money(file, "VALOR APROBADO", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	retef, err := money(file, "Rete-Fuente", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	ica, err := money(file, "ICA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	suma := retef.Add(ica)
	return canonical.Row{
		Fecha:           coerce.Date(rec.Get("FECHA PAGO")),
		AplicaAFV:       rec.Get("FACTURA"),
		VrFactura:       reclamado,
		VrBruto:         aprobado,
		Retef:           retef,
		ICA:             ica,
		SumaRetenciones: suma,
		VrRecaudado:     aprobado.Sub(suma),
		Diferencia:      reclamado.Sub(aprobado),
	}, nil
}
