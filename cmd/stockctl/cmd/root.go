// Package cmd implements the stockctl CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/stock-tracker/internal/api/client"
	"github.com/donaldgifford/stock-tracker/internal/cli"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "stockctl",
		Short: "CLI client for Stock Tracker",
		Long: "stockctl is a command-line client for the Stock Tracker API.\n" +
			"It lets you browse the inventory, edit rows, upload imports\n" +
			"and send the stock digest from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.stockctl.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", cli.FormatTable, "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(modifyCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(digestCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stockctl")
	}

	viper.SetEnvPrefix("STOCKCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == cli.FormatJSON
}
