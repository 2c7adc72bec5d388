package extract

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vallesalud/cartera/internal/common"
	"github.com/vallesalud/cartera/internal/source"
)

func suraWorkbook(t *testing.T, name string, preamble int) source.File {
	rows := make([][]any, 0, preamble+3)
	for i := 0; i < preamble; i++ {
		rows = append(rows, []any{""})
	}
	rows = append(rows,
		[]any{"Expediente", "Factura", "Fecha Consignacion", "Vlr Factura", "Vlr Orden de Pago", "RteFete", "RteICA", "RteIVA", "Vlr Consignado"},
		[]any{"EXP-1", "FV-100", "20240110", 1000, 980, 20, 7, 0, 973},
		[]any{"EXP-2", "FV-101", "20240111", 500, 490, 10, 3, 0, 487},
	)
	return xlsxFile(t, name, "", rows)
}

func TestSuraHeaderSearch(t *testing.T) {
	f := suraWorkbook(t, "sura.xlsx", 4)

	rows, rep, err := NewSura(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", rep.Warnings)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	row := rows[0]
	if row.Fecha != "2024-01-10" {
		t.Errorf("fecha = %q, want ISO-normalized", row.Fecha)
	}
	requireAmount(t, "vr factura", row.VrFactura, "1000")
	requireAmount(t, "vr bruto", row.VrBruto, "1000")
	requireAmount(t, "suma retenciones", row.SumaRetenciones, "27")
	requireAmount(t, "vr recaudado", row.VrRecaudado, "973")
	requireAmount(t, "diferencia", row.Diferencia, "0")
}

// The same file processed twice yields the same detected header and rows,
// regardless of preamble length.
func TestSuraHeaderSearchIdempotent(t *testing.T) {
	for _, preamble := range []int{0, 2, 7} {
		f := suraWorkbook(t, "sura.xlsx", preamble)
		first, _, err := NewSura(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
		if err != nil {
			t.Fatalf("preamble %d: %v", preamble, err)
		}
		second, _, err := NewSura(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
		if err != nil {
			t.Fatalf("preamble %d: %v", preamble, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("preamble %d: repeated extraction differs", preamble)
		}
		if len(first) != 2 {
			t.Errorf("preamble %d: rows = %d, want 2", preamble, len(first))
		}
	}
}

func TestSuraCSV(t *testing.T) {
	f := csvFile("sura.csv",
		"INFORME DE CONSIGNACIONES\n"+
			"Expediente;Factura;Fecha Consignacion;Vlr Factura;Vlr Orden de Pago;RteFete;RteICA;RteIVA;Vlr Consignado\n"+
			"EXP-9;FV-900;20240215;2000;1960;40;13;0;1947\n")

	rows, _, err := NewSura(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].AplicaAFV != "FV-900" {
		t.Errorf("aplica a fv = %q", rows[0].AplicaAFV)
	}
	requireAmount(t, "suma retenciones", rows[0].SumaRetenciones, "53")
}

func TestSuraMissingColumns(t *testing.T) {
	f := xlsxFile(t, "sura_incompleto.xlsx", "", [][]any{
		{"Expediente", "Factura", "Fecha Consignacion", "Vlr Factura"},
		{"EXP-1", "FV-1", "20240101", 100},
	})

	rows, rep, err := NewSura(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
	if len(rep.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(rep.Warnings))
	}
	var mismatch *common.SchemaMismatchError
	if !errors.As(rep.Warnings[0].Err, &mismatch) {
		t.Fatalf("warning type = %T", rep.Warnings[0].Err)
	}
	want := []string{"Vlr Orden de Pago", "RteFete", "RteICA", "RteIVA", "Vlr Consignado"}
	if !reflect.DeepEqual(mismatch.Missing, want) {
		t.Errorf("missing = %v, want %v", mismatch.Missing, want)
	}
}
