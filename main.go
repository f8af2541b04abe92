package main

import (
	"os"

	"github.com/sitecast/stopend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
