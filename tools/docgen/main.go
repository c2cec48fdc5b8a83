// Package main generates CLI reference documentation from the stock-tracker
// and stockctl command trees.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	server "github.com/donaldgifford/stock-tracker/cmd/stock-tracker/cmd"
	client "github.com/donaldgifford/stock-tracker/cmd/stockctl/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	for name, root := range map[string]*cobra.Command{
		"stock-tracker": server.Root(),
		"stockctl":      client.Root(),
	} {
		dir := filepath.Join(*output, name)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("creating output directory: %v", err)
		}

		root.DisableAutoGenTag = true

		if err := doc.GenMarkdownTree(root, dir); err != nil {
			log.Fatalf("generating %s docs: %v", name, err)
		}
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}
