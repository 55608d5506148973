// Package console is the interactive terminal: line prompts on one side,
// status lines on the other.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Rule is the separator line printed under section headings.
var Rule = strings.Repeat("-", 50)

type line struct {
	text string
	err  error
}

// Console reads answers from in and writes prompts and status lines to out.
// Reads happen on a background goroutine so a pending prompt can be abandoned
// when the context is canceled.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	start sync.Once
	lines chan line
}

// New creates a Console.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, lines: make(chan line)}
}

// read delivers input lines one at a time and closes lines after the first error.
func (c *Console) read() {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		c.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// Prompt prints label and returns the next input line without its line ending.
// Input that ends before any answer is typed yields io.ErrUnexpectedEOF.
// A canceled ctx abandons the prompt and returns ctx.Err().
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	name := strings.TrimSpace(label)
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read %q: %w", name, err)
	}
	if _, err := fmt.Fprint(c.out, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	c.start.Do(func() { go c.read() })

	var l line
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(c.out)
		return "", fmt.Errorf("read %q: %w", name, ctx.Err())
	case got, ok := <-c.lines:
		if !ok {
			got = line{err: io.EOF}
		}
		l = got
	}

	if l.err != nil {
		if !errors.Is(l.err, io.EOF) {
			return "", fmt.Errorf("read %q: %w", name, l.err)
		}
		if l.text == "" {
			return "", fmt.Errorf("read %q: %w", name, io.ErrUnexpectedEOF)
		}
	}
	return strings.TrimRight(l.text, "\r\n"), nil
}

// PromptOptional is Prompt for questions that may be skipped: end of input
// counts as an empty answer.
func (c *Console) PromptOptional(ctx context.Context, label string) (string, error) {
	answer, err := c.Prompt(ctx, label)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil
	}
	return answer, err
}

// Printf writes a formatted status line.
func (c *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Println writes a status line.
func (c *Console) Println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}
