// Package main is the entry point for the stockctl CLI client.
package main

import (
	"github.com/donaldgifford/stock-tracker/cmd/stockctl/cmd"
)

func main() {
	cmd.Execute()
}
