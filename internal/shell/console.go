package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const menu = "1) " + GenerateLabel + "\n2) " + PredictLabel + "\nq) Quit\n> "

// Run reads actions from in until quit, EOF or ctx is done. Prediction
// errors are displayed and do not end the loop. A pending read does not
// delay cancellation.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines, readErr := readLines(in, ctx.Done())
	fmt.Fprint(out, menu)
	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = l
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "g", "generate":
			s.GenerateReading()
		case "2", "p", "predict":
			_, _ = s.RunPrediction(ctx)
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintln(out, "unknown action")
		}
		fmt.Fprint(out, menu)
	}
}

// readLines scans in on its own goroutine. The scan error, nil on EOF, is
// sent before lines is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
