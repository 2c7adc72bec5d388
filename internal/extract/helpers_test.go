package extract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/source"
)

var testProfile = canonical.Profile{
	NIT:         "800250119",
	Aseguradora: "ASEGURADORA DE PRUEBA SA",
	Plan:        "POLIZAS",
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// xlsxFile builds an in-memory workbook fixture. An empty sheet name writes
// to the default sheet.
func xlsxFile(t *testing.T, name, sheet string, rows [][]any) source.File {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	target := sheet
	if target == "" {
		target = "Sheet1"
	}
	if target != "Sheet1" {
		if _, err := f.NewSheet(target); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := row
		if err := f.SetSheetRow(target, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return source.File{Name: name, Data: buf.Bytes()}
}

func csvFile(name, content string) source.File {
	return source.File{Name: name, Data: []byte(content)}
}

// requireAmount fails unless the decimal field equals want (given as string).
func requireAmount(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", field, got, want)
	}
}

// checkInvariants asserts the ledger identities every mapper must hold:
// suma_retenciones = retef + ica + iva and vr_recaudado = vr_bruto - suma.
func checkInvariants(t *testing.T, row canonical.Row) {
	t.Helper()
	suma := row.Retef.Add(row.ICA).Add(row.IVA)
	if !row.SumaRetenciones.Sub(suma).Abs().LessThanOrEqual(decimal.NewFromInt(1)) {
		t.Errorf("suma retenciones %s != retef+ica+iva %s", row.SumaRetenciones, suma)
	}
	net := row.VrBruto.Sub(row.SumaRetenciones)
	if !row.VrRecaudado.Sub(net).Abs().LessThanOrEqual(decimal.NewFromInt(1)) {
		t.Errorf("vr recaudado %s != bruto-suma %s", row.VrRecaudado, net)
	}
}
