// Command signalctl provisions clients and devices for the signalhub API.
package main

import (
	"os"

	"github.com/signalhub/signalhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
