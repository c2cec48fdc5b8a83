package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a CSV export. Both comma and semicolon separated files are
// accepted, and files that are not valid UTF-8 are decoded as Windows-1252,
// which is what spreadsheet tools write on French-locale desktops.
func ReadCSV(r io.Reader) ([]domain.ImportRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decoding csv: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return toRows(grid)
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas.
func sniffDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte{'\n'})
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// WriteCSV writes a header and records as comma separated UTF-8.
func WriteCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv records: %w", err)
	}
	return nil
}
