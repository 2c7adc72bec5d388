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

// Sura extracts Suramericana consignment reports. CSV feeds are
// semicolon-separated latin-1 with the header on the second line; workbook
// feeds bury the header at a file-dependent offset located by scanning for
// the "expediente" marker column.
type Sura struct {
	logger *slog.Logger
}

func NewSura(logger *slog.Logger) *Sura {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sura{logger: logger}
}

const suraHeaderMarker = "expediente"

func (s *Sura) Extract(ctx context.Context, batch []source.File, profile canonical.Profile) ([]canonical.Row, *Report, error) {
	return runBatch(ctx, s.logger, "sura", batch, profile, s.extractFile)
}

func (s *Sura) extractFile(f source.File, profile canonical.Profile) ([]canonical.Row, error) {
	var (
		g         layout.Grid
		headerRow int
	)
	if f.IsCSV() {
		grid, err := source.CSVGrid(f, ';', true)
		if err != nil {
			return nil, &common.ReadError{File: f.Name, Cause: err}
		}
		g, headerRow = layout.Grid(grid), 1
	} else {
		grid, err := source.ExcelGrid(f, "")
		if err != nil {
			return nil, &common.ReadError{File: f.Name, Cause: err}
		}
		g = layout.Grid(grid)
		if headerRow = g.HeaderRow(suraHeaderMarker); headerRow < 0 {
			headerRow = g.FirstDataRow()
		}
	}
	sch, missing := detect(g.Headers(headerRow), suraSchemas)
	if sch == nil {
		return nil, &common.SchemaMismatchError{File: f.Name, Missing: missing}
	}
	return mapRecords(f.Name, g.Records(headerRow), sch, profile)
}

var suraSchemas = []schema{
	{
		tag: "consignaciones",
		required: []string{
			"Factura", "Fecha Consignacion", "Vlr Factura", "Vlr Orden de Pago",
			"RteFete", "RteICA", "RteIVA", "Vlr Consignado",
		},
		mapRow: suraMap,
	},
}

func suraMap(file string, rec layout.Record) (canonical.Row, error) {
	factura, err := money(file, "Vlr Factura", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	retef, err := money(file, "RteFete", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	ica, err := money(file, "RteICA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	iva, err := money(file, "RteIVA", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	consignado, err := money(file, "Vlr Consignado", rec)
	if err != nil {
		return canonical.Row{}, err
	}
	return canonical.Row{
		// consignment dates arrive ISO-compact (YYYYMMDD)
		Fecha:           coerce.Date(rec.Get("Fecha Consignacion")),
		AplicaAFV:       rec.Get("Factura"),
		VrFactura:       factura,
		VrBruto:         factura,
		Retef:           retef,
		ICA:             ica,
		IVA:             iva,
		SumaRetenciones: retef.Add(ica),
		VrRecaudado:     consignado,
	}, nil
}
