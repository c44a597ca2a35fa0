package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/datacheckgo/internal/app"
)

// defaultProjectFile is picked up from the working directory when present and
// no -config flag is given.
const defaultProjectFile = "datacheck.toml"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("datacheckgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
datacheckgo - registration diagnostics for declarative validation resources.

Usage:
  datacheckgo [options] [PROJECT_PATH]

Arguments:
  PROJECT_PATH
    Path to a resource file or a directory of resource files
    (.hcl and .suite.yaml).

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Path to the resource file or directory.")
	pFlag := flagSet.String("p", "", "Path to the resource file or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to a datacheck.toml project file.")
	snapshotFlag := flagSet.String("snapshot", "", "Write a registry snapshot to this path after the run.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers for configuration loading.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *projectFlag != "" {
		path = *projectFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	projectFilePath := *configFlag
	if projectFilePath == "" {
		if _, err := os.Stat(defaultProjectFile); err == nil {
			projectFilePath = defaultProjectFile
		}
	}

	if path == "" && projectFilePath == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		ProjectPath:  path,
		SnapshotPath: *snapshotFlag,
		LogFormat:    strings.ToLower(*logFormatFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
		WorkerCount:  *workersFlag,
	}, projectFilePath)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
