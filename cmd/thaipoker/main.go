package main

import (
	"os"

	"github.com/behrlich/thaipoker/cmd/thaipoker/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
