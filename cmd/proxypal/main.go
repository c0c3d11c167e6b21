package main

import (
	"os"

	"github.com/proxypal/proxypal/cmd/proxypal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
