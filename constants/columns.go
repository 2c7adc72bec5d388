package constants

import "strings"

// Columns is the canonical ledger column order. Every exported batch carries
// exactly these headers, in this order, regardless of which payer produced it.
var Columns = []string{
	"SEDE",
	"FECHA",
	"NIT",
	"ASEGURADORA",
	"PLAN",
	"CASO",
	"APLICA A FV",
	"VR. FACTURA",
	"VR. BRUTO",
	"(-) RETEF",
	"(-) ICA",
	"IVA",
	"SUMA RETENCIONES",
	"VR. RECAUDADO",
	"DIFERENCIA",
	"ARCHIVO",
}

// AllowedExtensions holds the file extensions accepted for remittance batches.
var AllowedExtensions = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
	"csv":  {},
	"pdf":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
