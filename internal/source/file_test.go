package source

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vallesalud/cartera/internal/common"
)

func testWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	} else {
		sheet = "Sheet1"
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestFileKinds(t *testing.T) {
	tests := []struct {
		name  string
		ext   string
		csv   bool
		excel bool
		pdf   bool
	}{
		{"pagos.xlsx", "xlsx", false, true, false},
		{"pagos.XLS", "xls", false, true, false},
		{"feed.csv", "csv", true, false, false},
		{"estado.pdf", "pdf", false, false, true},
		{"notas.txt", "txt", false, false, false},
	}
	for _, tt := range tests {
		f := File{Name: tt.name}
		if f.Ext() != tt.ext {
			t.Errorf("%s: ext = %q, want %q", tt.name, f.Ext(), tt.ext)
		}
		if f.IsCSV() != tt.csv || f.IsExcel() != tt.excel || f.IsPDF() != tt.pdf {
			t.Errorf("%s: kind = csv:%v excel:%v pdf:%v", tt.name, f.IsCSV(), f.IsExcel(), f.IsPDF())
		}
	}
}

func TestExcelGridRejectsNonSpreadsheet(t *testing.T) {
	_, err := ExcelGrid(File{Name: "feed.csv", Data: []byte("a;b\n")}, "")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

// A named sheet that is absent must error instead of silently reading the
// first sheet.
func TestExcelGridMissingSheet(t *testing.T) {
	data := testWorkbook(t, "", [][]any{{"Factura", "Valor"}, {"FV-1", 100}})
	if _, err := ExcelGrid(File{Name: "pagos.xlsx", Data: data}, "Hoja1"); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}

func TestExcelGridNamedSheet(t *testing.T) {
	data := testWorkbook(t, "Hoja1", [][]any{{"Factura"}, {"FV-1"}})
	rows, err := ExcelGrid(File{Name: "pagos.xlsx", Data: data}, "Hoja1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Factura" {
		t.Errorf("rows = %v", rows)
	}
}

func TestCSVGridLatin1(t *testing.T) {
	// "Señor;100" with ñ encoded as latin-1 0xF1
	data := []byte{'S', 'e', 0xF1, 'o', 'r', ';', '1', '0', '0', '\n'}
	rows, err := CSVGrid(File{Name: "feed.csv", Data: data}, ';', true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Señor" || rows[0][1] != "100" {
		t.Errorf("rows = %v", rows)
	}
}
