// Package cmd implements the CLI commands for stock-tracker.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/stock-tracker/internal/cli"
)

// rootOptions carries the persistent flags. Values are read through v so
// STOCK_CONFIG and STOCK_OUTPUT work as well.
type rootOptions struct {
	v *viper.Viper
}

func (o *rootOptions) configPath() string {
	return o.v.GetString("config")
}

func (o *rootOptions) jsonOutput() bool {
	return o.v.GetString("output") == cli.FormatJSON
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "stock-tracker",
		Short: "Track telecom equipment stock",
		Long: "stock-tracker keeps an inventory of telecom equipment bucketed by\n" +
			"name, type and status. It merges spreadsheet imports into the\n" +
			"inventory, flags low stock and broken gear, and serves an HTTP API.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if out := opts.v.GetString("output"); !cli.ValidFormat(out) {
				return fmt.Errorf("--output must be %q or %q (got %q)", cli.FormatTable, cli.FormatJSON, out)
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "config.yaml", "config file path")
	root.PersistentFlags().String("output", cli.FormatTable, "output format (table, json)")

	cobra.CheckErr(opts.v.BindPFlag("config", root.PersistentFlags().Lookup("config")))
	cobra.CheckErr(opts.v.BindPFlag("output", root.PersistentFlags().Lookup("output")))
	opts.v.SetEnvPrefix("STOCK")
	opts.v.AutomaticEnv()

	root.AddCommand(
		serveCmd(opts),
		migrateCmd(opts),
		listCmd(opts),
		summaryCmd(opts),
		addCmd(opts),
		modifyCmd(opts),
		deleteCmd(opts),
		importCmd(opts),
		exportCmd(opts),
		digestCmd(opts),
		versionCmd(),
	)

	return root
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command.
func Execute() error {
	loadDotEnv(".env")
	return newRootCmd().Execute()
}

// loadDotEnv exports the variables of path, if it exists, so that the config
// file can reference secrets with ${VAR}. Variables already set win.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading %s: %v\n", path, err)
	}
}
