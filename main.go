package main

import (
	"log"
	"os"

	"github.com/swimtools/heatsheet/cli"
	"github.com/swimtools/heatsheet/pdf"
)

// Default configuration for the CLI
var config = &cli.DefaultConfig

func main() {
	log.SetPrefix("[heatsheet]: ")
	log.SetFlags(log.Lshortfile)

	// Set the locale to the system's default
	pdf.SetLocale()

	// Interactive fallback when annotate is run without an input path.
	config.PickPaths = cli.TerminalPicker(".")

	// Parse the command line arguments
	ctx := cli.DefineFlags(config)
	subcmd, err := ctx.Parse(os.Args)
	if err != nil {
		log.Fatalln(err)
	}

	// If the subcommand is nil, print the usage and exit
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	// Run the subcommand
	subcmd.Handler()
}
