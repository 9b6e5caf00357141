package ui

import (
	"bufio"
	"context"
	"io"
	"strings"

	fmt "github.com/jhunt/go-ansi"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	out io.Writer
	in  *bufio.Reader
}

func NewPrompter(out io.Writer, in *bufio.Reader) *Prompter {
	return &Prompter{out: out, in: in}
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next input line, or ctx.Err() as soon as ctx is
// cancelled. A read abandoned on cancellation is left pending.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- lineResult{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && (r.err != io.EOF || r.line == "") {
			return "", r.err
		}
		return r.line, nil
	}
}

// Ask prints label and returns the trimmed answer. io.EOF is returned
// once the input is exhausted.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(p.out, "@C{%s}: ", label)
	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault is Ask with def offered in brackets and returned for an
// empty answer.
func (p *Prompter) AskDefault(ctx context.Context, label, def string) (string, error) {
	if def != "" {
		label += " [" + def + "]"
	}
	answer, err := p.Ask(ctx, label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Command reads one shell line and splits it into words.
func (p *Prompter) Command(ctx context.Context) ([]string, error) {
	fmt.Fprintf(p.out, "\n@M{flavorfind>} ")
	line, err := p.readLine(ctx)
	if err != nil {
		return nil, err
	}
	return strings.Fields(line), nil
}
