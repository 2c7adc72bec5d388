package extract

import (
	"context"
	"testing"

	"github.com/vallesalud/cartera/internal/source"
)

func TestMundialLiquidacion(t *testing.T) {
	f := xlsxFile(t, "mundial.xlsx", "", [][]any{
		{"COMPAÑIA MUNDIAL DE SEGUROS"},
		{},
		{"Liquidación de siniestros"},
		{},
		{},
		{"FECHA PAGO", "FACTURA", "VALOR RECLAMADO", "VALOR APROBADO", "Rete-Fuente", "ICA"},
		{"02/01/2024", "FV-800", 1050, 1000, 20, 7},
	})

	rows, rep, err := NewMundial(testLogger()).Extract(context.Background(), []source.File{f}, testProfile)
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
	if row.Fecha != "2024-01-02" {
		t.Errorf("fecha = %q", row.Fecha)
	}
	if row.AplicaAFV != "FV-800" {
		t.Errorf("aplica a fv = %q", row.AplicaAFV)
	}
	requireAmount(t, "suma retenciones", row.SumaRetenciones, "27")
	requireAmount(t, "vr recaudado", row.VrRecaudado, "973")
	requireAmount(t, "diferencia", row.Diferencia, "50")
	checkInvariants(t, row)
}
