package cli

// Config holds the configuration for the CLI.
type Config struct {
	// Path of the file or the folder to process.
	InputPath string

	// Redact, Frame, Highlight, Underline, Squiggly, Strikeout or Remove.
	Action string

	// Optional comma-separated zero-based page filter, e.g. "2,4".
	Pages string

	// Output file for the Remove action. File mode only.
	OutputFile string

	// Process folders recursively. Folder mode only.
	Recursive bool

	// PickPaths supplies input files interactively when no input path is
	// given. It is injected by the surrounding tool; the core never opens
	// dialogs itself.
	PickPaths func() ([]string, error)
}

var DefaultConfig = Config{
	Action: "Highlight",
}
