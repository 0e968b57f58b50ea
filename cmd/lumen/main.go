// Command lumen puts the display to sleep at night and wakes it in the morning.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/lumen/internal/adapters/driving/cli"
	"github.com/custodia-labs/lumen/internal/app"
)

func main() {
	cli.SetFactory(app.Factory{})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
