package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Terminal is a line-oriented console shared by every human seat at one
// table, so that several players can take turns at the same keyboard.
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer

	start sync.Once
	lines chan inputLine
}

type inputLine struct {
	text string
	err  error
}

// NewTerminal reads moves from in and writes prompts to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		scanner: bufio.NewScanner(in),
		out:     out,
		lines:   make(chan inputLine),
	}
}

// Printf writes a formatted message to the terminal output
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// ReadLine returns the next trimmed input line, or io.EOF once input is
// exhausted. It returns the context's error as soon as ctx is done; a line
// typed afterwards is kept for the next call.
func (t *Terminal) ReadLine(ctx context.Context) (string, error) {
	t.start.Do(func() { go t.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}

// scan feeds input lines to ReadLine until the reader is exhausted
func (t *Terminal) scan() {
	defer close(t.lines)
	for t.scanner.Scan() {
		t.lines <- inputLine{text: strings.TrimSpace(t.scanner.Text())}
	}
	err := t.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	t.lines <- inputLine{err: err}
}
