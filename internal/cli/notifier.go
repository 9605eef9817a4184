package cli

import (
	"fmt"
	"io"
)

// consoleNotifier prints service feedback, the terminal stand-in for a toast.
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Success(msg string) { fmt.Fprintln(n.w, "✔ "+msg) }
func (n consoleNotifier) Info(msg string)    { fmt.Fprintln(n.w, "• "+msg) }
