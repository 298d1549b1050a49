// Package output provides user-facing output formatting for the certpanel
// CLI tool.
//
// User-facing messages go to stdout with optional color; debug logging is
// the logger package's job and goes to stderr. When --json is set, commands
// emit a single JSON document via JSON() and suppress decorated messages.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// stdout is the destination for user-facing output. Replaceable for tests.
var stdout io.Writer = os.Stdout

// SetWriter sets the output destination. Useful for testing.
func SetWriter(w io.Writer) {
	stdout = w
}

// JSON outputs data as indented JSON.
func JSON(data interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs rows as a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := make([]string, len(headers))
	for i, h := range headers {
		headerLine[i] = fmt.Sprintf("%-*s", widths[i], h)
	}
	fmt.Fprintln(stdout, strings.Join(headerLine, "  "))

	sepLine := make([]string, len(headers))
	for i, w := range widths {
		sepLine[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(stdout, strings.Join(sepLine, "  "))

	for _, row := range rows {
		line := make([]string, len(row))
		for i, cell := range row {
			if i < len(widths) {
				line[i] = fmt.Sprintf("%-*s", widths[i], cell)
			}
		}
		fmt.Fprintln(stdout, strings.Join(line, "  "))
	}
}

// Success prints a green success message with a checkmark.
func Success(format string, args ...interface{}) {
	successColor.Fprintf(stdout, "✓ "+format+"\n", args...)
}

// Error prints a red error message with a cross.
func Error(format string, args ...interface{}) {
	errorColor.Fprintf(stdout, "✗ "+format+"\n", args...)
}

// Warn prints a yellow warning message.
func Warn(format string, args ...interface{}) {
	warnColor.Fprintf(stdout, "! "+format+"\n", args...)
}

// Info prints a cyan informational message.
func Info(format string, args ...interface{}) {
	infoColor.Fprintf(stdout, "→ "+format+"\n", args...)
}

// Print prints a plain message without decoration.
func Print(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}
