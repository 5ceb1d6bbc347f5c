package shell

import (
	"fmt"
	"io"
)

type discard struct{}

func (discard) Info(string, string)  {}
func (discard) Error(string, string) {}

// Discard drops every message. The HTTP surface renders outcomes itself.
var Discard Display = discard{}

// Console writes each message as a titled block.
type Console struct {
	Out io.Writer
	Err io.Writer
}

func (c Console) Info(title, message string) {
	fmt.Fprintf(c.Out, "[%s]\n%s\n\n", title, message)
}

func (c Console) Error(title, message string) {
	w := c.Err
	if w == nil {
		w = c.Out
	}
	fmt.Fprintf(w, "[%s]\n%s\n\n", title, message)
}
