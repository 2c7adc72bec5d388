// Package source abstracts the uploaded batch files and loads them into raw
// string grids, independent of the spreadsheet or delimited-text container.
package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/vallesalud/cartera/constants"
	"github.com/vallesalud/cartera/internal/common"
)

// File is one uploaded input: a name and its full contents. Readers are
// opened against the bytes for a single processing step and closed before
// the next file starts.
type File struct {
	Name string
	Data []byte
}

// Load reads a file from disk into a batch entry.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

// Ext returns the normalized extension without the dot.
func (f File) Ext() string {
	return constants.NormalizeExt(filepath.Ext(f.Name))
}

func (f File) IsCSV() bool { return f.Ext() == "csv" }

func (f File) IsExcel() bool {
	ext := f.Ext()
	return ext == "xlsx" || ext == "xls"
}

func (f File) IsPDF() bool { return f.Ext() == "pdf" }

// ExcelGrid loads a worksheet as a string grid. An empty sheet name selects
// the workbook's first sheet; a named sheet that is absent is an error, never
// a silent fallback.
func ExcelGrid(f File, sheet string) ([][]string, error) {
	if !f.IsExcel() {
		return nil, common.WrapError(common.ErrInvalidInput,
			fmt.Sprintf("%s: expected a spreadsheet, got %q", f.Name, f.Ext()))
	}
	wb, err := excelize.OpenReader(bytes.NewReader(f.Data))
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if sheet != "" {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		return rows, nil
	}
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", f.Name)
	}
	return wb.GetRows(sheets[0])
}

// CSVGrid loads a delimited text file as a string grid. Latin-1 payer feeds
// are decoded to UTF-8 before parsing.
func CSVGrid(f File, comma rune, latin1 bool) ([][]string, error) {
	var rd io.Reader = bytes.NewReader(f.Data)
	if latin1 {
		rd = transform.NewReader(rd, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(rd)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
