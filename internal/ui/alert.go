package ui

import (
	"bufio"
	"io"
	"sync"

	fmt "github.com/jhunt/go-ansi"
)

// Alerter prints alerts in red. When it has an input to read from, it
// blocks until the user presses Enter.
type Alerter struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

func NewAlerter(out io.Writer, in *bufio.Reader) *Alerter {
	return &Alerter{out: out, in: in}
}

func (a *Alerter) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, "@R{!!! %s}\n", msg)
	if a.in == nil {
		return
	}
	fmt.Fprintf(a.out, "(press Enter to continue)")
	a.in.ReadString('\n')
}
