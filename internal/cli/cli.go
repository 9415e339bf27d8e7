package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/mgrid/internal/app"
)

// ExitError is an error carrying a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string { return e.Message }

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating the program should exit cleanly (help requested or no
// action given), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("mgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mgrid - managed-object registry and remote invocation toolkit.

Usage:
  mgrid [options] ACTION

Actions:
  serve       host the local registry as a management endpoint
  query       list (type, name) bindings on the remote endpoint
  invoke      call one operation on a remote managed object
  register    register a contract's implementation on the remote endpoint
  unregister  remove a binding from the remote endpoint

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the HCL configuration file.")
	contractFlag := flagSet.String("contract", "", "Simple name of the target contract.")
	nameFlag := flagSet.String("name", "", "Explicit canonical object name (overrides derivation).")
	methodFlag := flagSet.String("method", "", "Operation name for the invoke action.")
	argsFlag := flagSet.String("args", "", "JSON array of arguments for the invoke action.")
	portFlag := flagSet.Int("port", 0, "Listen port for the serve action. 0 uses the configured endpoint port.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Log level: 'debug', 'info', 'warn', or 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	action := strings.ToLower(flagSet.Arg(0))

	return &app.Config{
		ConfigPath: *configFlag,
		Action:     action,
		Contract:   *contractFlag,
		Name:       *nameFlag,
		Method:     *methodFlag,
		Args:       *argsFlag,
		Port:       *portFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	}, false, nil
}
