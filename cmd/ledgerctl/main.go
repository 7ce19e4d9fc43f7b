package main

import (
	"os"

	"github.com/xxz807/finscale/reports/cmd/ledgerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
