package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer is how destructive actions and status changes ask the operator
// for a decision. Core logic depends on this interface, not on a
// particular UI modality.
type Confirmer interface {
	// Confirm asks a yes/no question; only an explicit yes returns true.
	Confirm(prompt string) bool
	// Choose asks for a value, offering a default. ok is false when the
	// operator entered nothing (cancel).
	Choose(prompt, def string) (value string, ok bool)
}

// TerminalConfirmer reads decisions from an input stream, typically stdin.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalConfirmer builds a confirmer reading from in and prompting on
// out. A *bufio.Reader is used as-is so the console loop and the confirmer
// can share one input stream without swallowing each other's bytes.
func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &TerminalConfirmer{in: br, out: out}
}

func (t *TerminalConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *TerminalConfirmer) Choose(prompt, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", prompt)
	}
	line, err := t.in.ReadString('\n')
	if err != nil {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		if def == "" {
			return "", false
		}
		return def, true
	}
	return line, true
}
