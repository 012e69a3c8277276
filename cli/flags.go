package cli

import (
	"github.com/abiiranathan/goflag"
)

// DefineFlags registers the subcommands and their flags.
func DefineFlags(config *Config) *goflag.Context {
	// Shared by the inspection subcommands, which only accept a file.
	inputFileFlag := goflag.Flag{
		FlagType:  goflag.FlagFilePath,
		Name:      "input_path",
		ShortName: "i",
		Value:     &config.InputPath,
		Usage:     "The heat sheet to inspect",
		Required:  true,
		Validator: nil,
	}

	ctx := goflag.NewContext()

	ctx.AddSubCommand("annotate", "Annotate every team's swims in a heat sheet", func() {
		RunAnnotate(config)
	}).AddFlag(goflag.FlagString, "input_path", "i", &config.InputPath,
		"The path of the file or the folder to process", false).
		AddFlag(goflag.FlagString, "action", "a", &config.Action,
			"Redact, Frame, Highlight, Underline, Squiggly, Strikeout or Remove", false).
		AddFlag(goflag.FlagString, "pages", "p", &config.Pages,
			"The pages to consider e.g.: 2,4", false).
		AddFlag(goflag.FlagString, "output_file", "o", &config.OutputFile,
			"Output file for the Remove action (file mode only)", false).
		AddFlag(goflag.FlagBool, "recursive", "r", &config.Recursive,
			"Process folders recursively", false)

	ctx.AddSubCommand("teams", "List the team codes found in a heat sheet", func() {
		RunTeams(config)
	}).AddFlagPtr(&inputFileFlag)

	ctx.AddSubCommand("cuts", "List the qualifying cut codes declared in a heat sheet", func() {
		RunCuts(config)
	}).AddFlagPtr(&inputFileFlag)

	ctx.AddSubCommand("info", "Print document metadata", func() {
		RunInfo(config)
	}).AddFlagPtr(&inputFileFlag)

	return ctx
}
