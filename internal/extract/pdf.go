package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// defaultPDFPages is the page budget for statement mining: payers front-load
// the invoice table, so the remaining pages are skipped.
const defaultPDFPages = 2

// pageTexts extracts plain text from the first maxPages pages of a PDF byte
// stream. The reader panics on some malformed cross-reference tables, so a
// recover turns those into ordinary read failures.
func pageTexts(data []byte, maxPages int) (texts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	n := reader.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	for i := 1; i <= n; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// pad2 left-pads a day or month to two digits.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
