package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Process-wide CLI state, set once by the root command.
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
	ephemeral   bool
	projectRoot = "."

	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// SetEphemeral keeps workspace state in memory for the rest of the process.
func SetEphemeral(e bool) {
	ephemeral = e
}

// SetStreams redirects prompts and status messages. Nil leaves a stream
// unchanged.
func SetStreams(in io.Reader, out, errOut io.Writer) {
	if in != nil {
		stdin = in
	}
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetProjectRoot sets the directory holding the .pagesmith folder
func SetProjectRoot(root string) {
	if root == "" {
		root = "."
	}
	projectRoot = root
}

// ProjectRoot returns the directory holding the .pagesmith folder
func ProjectRoot() string {
	return projectRoot
}

// Quiet reports whether informational output is suppressed
func Quiet() bool {
	return quiet
}

// Confirm asks a yes/no question on the prompt stream. --yes answers it.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(stdout, prompt+suffix)

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// message writes one status line, prefixed with a symbol or, without color,
// with a plain label.
func message(w io.Writer, symbol, label, format string, args ...interface{}) {
	prefix := symbol
	if noColor {
		prefix = label + ":"
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		message(stdout, "✓", "OK", format, args...)
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		message(stdout, "ℹ", "INFO", format, args...)
	}
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	message(stderr, "⚠", "WARNING", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	message(stderr, "✗", "ERROR", format, args...)
}
