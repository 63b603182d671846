// Package report is the user-facing progress sink for a generation run. The
// core pipeline only ever calls Headline and Progress; where the messages go
// (styled console, buffer, nowhere) is the caller's choice.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Reporter receives fire-and-forget progress messages. Implementations must
// not fail; the pipeline never inspects a result from these calls.
type Reporter interface {
	// Headline announces a new phase of the run.
	Headline(message string)
	// Progress reports a single step inside the current phase.
	Progress(message string)
}

// Console writes styled messages to a terminal.
type Console struct {
	out io.Writer
}

// NewConsole returns a Reporter writing to out; nil means stdout.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Headline prints the message bold on its own line.
func (c *Console) Headline(message string) {
	fmt.Fprintln(c.out, pterm.Bold.Sprint(message))
}

// Progress prints an indented, prefixed step line.
func (c *Console) Progress(message string) {
	fmt.Fprintf(c.out, "  %s %s\n", pterm.Info.Prefix.Text, message)
}

// Discard swallows every message. It is the default reporter for library
// callers that only want the generated files.
type Discard struct{}

func (Discard) Headline(string) {}
func (Discard) Progress(string) {}
