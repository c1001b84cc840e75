// Command sequel is a thin demonstration binary for pkg/sequel.
package main

import (
	"os"

	"github.com/go-sequel/sequel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
