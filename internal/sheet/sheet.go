// Package sheet reads equipment import sources (Excel workbooks and CSV
// files) into import rows keyed by normalized column headers, and writes the
// inventory back out for export.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

var (
	// ErrLegacyXLS is returned for binary .xls workbooks.
	ErrLegacyXLS = errors.New("legacy .xls workbooks are not supported, save the file as .xlsx")

	// ErrUnsupportedFormat is returned for extensions other than .xlsx,
	// .xlsm and .csv.
	ErrUnsupportedFormat = errors.New("unsupported import format")

	// ErrNoHeader is returned when the source has no non-empty row.
	ErrNoHeader = errors.New("no header row found")
)

// Format identifies an import source encoding.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Options tunes how a workbook is read.
type Options struct {
	// Sheet selects a worksheet by name. Empty means the first sheet.
	Sheet string
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return "", ErrLegacyXLS
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadFile reads the import rows of a workbook or CSV file.
func ReadFile(path string, opts Options) ([]domain.ImportRow, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, format, opts)
}

// Read reads import rows from r in the given format.
func Read(r io.Reader, format Format, opts Options) ([]domain.ImportRow, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(r, opts)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadXLSX reads the selected worksheet of an Office Open XML workbook.
func ReadXLSX(r io.Reader, opts Options) ([]domain.ImportRow, error) {
	grid, err := readGrid(r, opts)
	if err != nil {
		return nil, err
	}
	return toRows(grid)
}

func readGrid(r io.Reader, opts Options) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	name := opts.Sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		name = sheets[0]
	} else if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}

	grid, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	return grid, nil
}

// toRows turns a cell grid into import rows. The first non-empty row is the
// header; fully empty rows after it are dropped. Line is the 1-based row
// number in the source.
func toRows(grid [][]string) ([]domain.ImportRow, error) {
	headerAt := -1
	for i, cells := range grid {
		if !blank(cells) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, ErrNoHeader
	}

	headers := make([]string, len(grid[headerAt]))
	seen := make(map[string]bool, len(headers))
	for i, h := range grid[headerAt] {
		key := NormalizeHeader(h)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		headers[i] = key
	}

	rows := make([]domain.ImportRow, 0, len(grid)-headerAt-1)
	for i := headerAt + 1; i < len(grid); i++ {
		cells := grid[i]
		if blank(cells) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for col, key := range headers {
			if key == "" {
				continue
			}
			var v string
			if col < len(cells) {
				v = strings.TrimSpace(cells[col])
			}
			fields[key] = v
		}
		rows = append(rows, domain.ImportRow{Line: i + 1, Fields: fields})
	}
	return rows, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader folds a column header to its lookup key: accents removed,
// lower case, trimmed. "Quantité " becomes "quantite".
func NormalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	return strings.ToLower(strings.TrimSpace(s))
}
