package main

import (
	"fmt"
	"os"

	"github.com/yoanbernabeu/locmon/cli"
)

// version is overridden at release time via -ldflags "-X main.version=vX.Y.Z".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "locmon: %v\n", err)
		os.Exit(1)
	}
}
