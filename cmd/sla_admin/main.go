package main

import (
	"os"

	"github.com/atelierops/shop_ledger_app/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
