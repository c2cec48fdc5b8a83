package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/stock-tracker/internal/api/client"
	"github.com/donaldgifford/stock-tracker/internal/cli"
	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/sheet"
)

func importCmd() *cobra.Command {
	var (
		sheetName   string
		skipInvalid bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upload a spreadsheet import",
		Long: "Upload an .xlsx workbook as is, or read a .csv locally and send its\n" +
			"rows. The server reconciles the rows into the inventory in order.",
		Example: `  stockctl import stock.xlsx --sheet "Mai 2024"
  stockctl import livraison.csv --skip-invalid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var skip *bool
			if cmd.Flags().Changed("skip-invalid") {
				skip = &skipInvalid
			}

			report, err := upload(context.Background(), newClient(), path, sheetName, skip)
			if report != nil {
				var perr error
				if jsonOutput() {
					perr = outputJSON(report)
				} else {
					perr = cli.PrintImportReport(os.Stdout, report)
				}
				if perr != nil {
					return perr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "skip rows with unusable data")

	return cmd
}

func upload(
	ctx context.Context,
	c *apiclient.Client,
	path, sheetName string,
	skip *bool,
) (*engine.ImportReport, error) {
	format, err := sheet.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)

	if format == sheet.FormatXLSX {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		return c.ImportSheet(ctx, f, &apiclient.SheetParams{
			Sheet:       sheetName,
			Source:      source,
			SkipInvalid: skip,
		})
	}

	rows, err := sheet.ReadFile(path, sheet.Options{})
	if err != nil {
		return nil, err
	}

	req := &apiclient.ImportRowsRequest{
		Source:          source,
		SkipInvalidRows: skip,
		Rows:            make([]map[string]string, len(rows)),
	}
	for i := range rows {
		req.Rows[i] = rows[i].Fields
	}
	return c.ImportRows(ctx, req)
}
