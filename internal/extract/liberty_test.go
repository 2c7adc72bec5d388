package extract

import (
	"context"
	"testing"

	"github.com/vallesalud/cartera/internal/source"
)

func TestLibertyGirosWorkbook(t *testing.T) {
	f := xlsxFile(t, "liberty.xlsx", "", [][]any{
		{"FECHA GIRO", "NRO FACTURA", "VALOR LIQUIDADO", "VALOR RETEFUENTE", "VALOR PAGADO"},
		{"2024-03-01", "FV-900", 1000, 20, 980},
	})

	rows, rep, err := NewLiberty(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", rep.Warnings)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.AplicaAFV != "FV-900" {
		t.Errorf("aplica a fv = %q", row.AplicaAFV)
	}
	requireAmount(t, "vr factura", row.VrFactura, "1000")
	requireAmount(t, "vr bruto", row.VrBruto, "1000")
	requireAmount(t, "retef", row.Retef, "20")
	requireAmount(t, "ica", row.ICA, "0")
	requireAmount(t, "vr recaudado", row.VrRecaudado, "980")
	requireAmount(t, "diferencia", row.Diferencia, "0")
	checkInvariants(t, row)
}

// The comma-separated feed carries the same fields under snake_case names.
func TestLibertyGirosCSV(t *testing.T) {
	f := csvFile("liberty.csv",
		"Fecha_Pago,No_Factura,Valor_Base,Valor_Ret,Valor_Pagado\n"+
			"2024-03-02,FV-901,500,10,490\n")

	rows, _, err := NewLiberty(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].AplicaAFV != "FV-901" {
		t.Errorf("aplica a fv = %q", rows[0].AplicaAFV)
	}
	requireAmount(t, "retef", rows[0].Retef, "10")
	requireAmount(t, "vr recaudado", rows[0].VrRecaudado, "490")
}
