package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/stock-tracker/internal/cli"
	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/sheet"
	"github.com/donaldgifford/stock-tracker/pkg/status"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

func importCmd(opts *rootOptions) *cobra.Command {
	var (
		sheetName   string
		skipInvalid bool
		exportCSV   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a spreadsheet into the inventory",
		Long: "Import an .xlsx or .csv file. Rows are merged into the bucket with the\n" +
			"same name, type and status, or inserted. Required columns: nom, type,\n" +
			"quantite. Optional: fournisseur, remarque, statut.\n\n" +
			"By default the first row with unusable data stops the import; rows\n" +
			"before it stay imported. --skip-invalid reports such rows and goes on.",
		Example: `  stock-tracker import stock.xlsx
  stock-tracker import stock.xlsx --sheet "Mai 2024" --skip-invalid
  stock-tracker import livraison.csv --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			return withApp(cmd.Context(), opts, func(a *app) error {
				flags := cmd.Flags()
				if !flags.Changed("sheet") {
					sheetName = a.cfg.Import.Sheet
				}
				if !flags.Changed("skip-invalid") {
					skipInvalid = a.cfg.Import.SkipInvalidRows
				}
				if !flags.Changed("export-csv") {
					exportCSV = a.cfg.Import.ExportCSV
				}

				sheetOpts := sheet.Options{Sheet: sheetName}
				rows, err := sheet.ReadFile(path, sheetOpts)
				if err != nil {
					return err
				}
				warnUnknownStatuses(a.log, rows)

				report, importErr := a.engine.Import(cmd.Context(), rows, engine.ImportOptions{
					SkipInvalidRows: skipInvalid,
					Source:          filepath.Base(path),
				})

				out := cmd.OutOrStdout()
				if report != nil {
					if opts.jsonOutput() {
						err = cli.OutputJSON(out, report)
					} else {
						err = cli.PrintImportReport(out, report)
					}
					if err != nil {
						return err
					}
				}
				if importErr != nil {
					return importErr
				}

				if exportCSV {
					if format, _ := sheet.DetectFormat(path); format == sheet.FormatXLSX {
						csvPath, err := sheet.ExportCSV(path, sheetOpts)
						if err != nil {
							return err
						}
						a.log.Info("sheet exported", "path", csvPath)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "skip rows with unusable data")
	cmd.Flags().BoolVar(&exportCSV, "export-csv", false, "also write the sheet as CSV next to the file")

	return cmd
}

// warnUnknownStatuses logs statut cells that are not a known spelling. Such
// rows are imported as functional.
func warnUnknownStatuses(log *slog.Logger, rows []domain.ImportRow) {
	for i := range rows {
		raw, ok := rows[i].Get(engine.ColumnStatus)
		if !ok {
			continue
		}
		if _, known := status.Parse(raw); !known {
			log.Warn("unrecognized status, importing as functional",
				"line", rows[i].Line,
				"status", raw,
				"as", domain.StatusFunctional,
			)
		}
	}
}

func exportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the inventory to .xlsx or .csv",
		Long: "Write every row to a spreadsheet. The columns match the import\n" +
			"format, so an export can be edited and imported again.",
		Example: `  stock-tracker export inventaire.xlsx
  stock-tracker export inventaire.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			return withApp(cmd.Context(), opts, func(a *app) error {
				listings, err := a.engine.List(cmd.Context(), nil)
				if err != nil {
					return err
				}

				rows := make([]domain.Equipment, len(listings))
				for i := range listings {
					rows[i] = listings[i].Equipment
				}

				if err := sheet.WriteFile(path, rows); err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s.\n", len(rows), path)
				return err
			})
		},
	}
}
