package main

import (
	"chronos/internal/di"
	"chronos/internal/structures"
	"fmt"
	flag "github.com/spf13/pflag"
	"os"
)

func main() {
	var flags structures.CliFlags
	flag.StringVarP(&flags.ConfigPath, "config", "c", "", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "force debug log level")
	flag.Parse()

	app, err := di.InitApp(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronos-cloud: %s\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "chronos-cloud: %s\n", err)
		os.Exit(1)
	}
}
