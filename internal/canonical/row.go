// Package canonical defines the normalized ledger row every payer extraction
// converges on, and the batch table assembled from them.
package canonical

import (
	"github.com/shopspring/decimal"

	"github.com/vallesalud/cartera/constants"
)

// Profile carries the payer constants threaded read-only through every
// extraction call and stamped on each emitted row.
type Profile struct {
	NIT         string
	Aseguradora string
	Plan        string
}

// Row is one normalized invoice/payment line. Fields a payer's feed does not
// carry keep their zero value: "" for text, 0 for amounts.
type Row struct {
	Sede            string
	Fecha           string
	NIT             string
	Aseguradora     string
	Plan            string
	Caso            string
	AplicaAFV       string
	VrFactura       decimal.Decimal
	VrBruto         decimal.Decimal
	Retef           decimal.Decimal
	ICA             decimal.Decimal
	IVA             decimal.Decimal
	SumaRetenciones decimal.Decimal
	VrRecaudado     decimal.Decimal
	Diferencia      decimal.Decimal
	Archivo         string
}

// Stamp fills the payer-constant fields and the source file name.
func (r *Row) Stamp(p Profile, file string) {
	r.NIT = p.NIT
	r.Aseguradora = p.Aseguradora
	r.Plan = p.Plan
	r.Archivo = file
}

// Record returns the row's values in canonical column order.
func (r Row) Record() []any {
	return []any{
		r.Sede,
		r.Fecha,
		r.NIT,
		r.Aseguradora,
		r.Plan,
		r.Caso,
		r.AplicaAFV,
		amount(r.VrFactura),
		amount(r.VrBruto),
		amount(r.Retef),
		amount(r.ICA),
		amount(r.IVA),
		amount(r.SumaRetenciones),
		amount(r.VrRecaudado),
		amount(r.Diferencia),
		r.Archivo,
	}
}

func amount(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Table is the batch accumulator: the canonical columns plus rows in
// file-arrival order. An empty batch still exposes the full column set so
// the export collaborator never receives an undefined shape.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the canonical columns.
func NewTable() *Table {
	return &Table{Columns: append([]string(nil), constants.Columns...)}
}

// Append adds rows preserving arrival order.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Empty reports whether no file in the batch produced a row.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}
