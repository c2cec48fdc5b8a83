package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// ExportSheetName is the worksheet written by WriteXLSX.
const ExportSheetName = "equipements"

// ExportHeader is the column order of inventory exports. It is also a valid
// import header.
var ExportHeader = []string{"id", "nom", "type", "quantite", "fournisseur", "remarque", "statut"}

func exportRecord(e *domain.Equipment) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Name,
		e.Type,
		strconv.Itoa(e.Quantity),
		e.Supplier,
		e.Note,
		string(e.Status),
	}
}

// WriteXLSX writes rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []domain.Equipment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(ExportSheetName, "A1", "G1", style)
	}

	for i := range rows {
		e := &rows[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := []any{e.ID, e.Name, e.Type, e.Quantity, e.Supplier, e.Note, string(e.Status)}
		if err := f.SetSheetRow(ExportSheetName, cell, &record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(ExportSheetName, "B", "C", 25)
	_ = f.SetColWidth(ExportSheetName, "E", "F", 30)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile exports rows to path as .xlsx or .csv depending on its extension.
func WriteFile(path string, rows []domain.Equipment) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(f, rows)
	default:
		records := make([][]string, len(rows))
		for i := range rows {
			records[i] = exportRecord(&rows[i])
		}
		err = WriteCSV(f, ExportHeader, records)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// CSVPath returns the sibling .csv path of a workbook path.
func CSVPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
}

// ExportCSV converts the selected sheet of a workbook to a CSV file next to
// it and returns the CSV path. Cells are written as read, header included.
func ExportCSV(path string, opts Options) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}
	if format != FormatXLSX {
		return "", fmt.Errorf("%w: csv export needs a workbook", ErrUnsupportedFormat)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	grid, err := readGrid(src, opts)
	if err != nil {
		return "", err
	}
	if len(grid) == 0 {
		return "", ErrNoHeader
	}

	out := CSVPath(path)
	dst, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", out, err)
	}

	err = WriteCSV(dst, grid[0], grid[1:])
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return out, nil
}
