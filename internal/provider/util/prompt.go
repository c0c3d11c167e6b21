package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers to interactive questions. Secrets are read without
// echo when In is a terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	r *bufio.Reader
}

// NewPrompter returns a Prompter bound to the process stdin and stderr.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

func (p *Prompter) reader() *bufio.Reader {
	if p.r == nil {
		p.r = bufio.NewReader(p.In)
	}
	return p.r
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader().ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret prompts for a value that should not be echoed.
func (p *Prompter) Secret(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt+": ")

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return line, nil
}

// Line prompts for a plain line of input.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt+": ")
	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

// Choice displays options and returns the selected index (0-based).
func (p *Prompter) Choice(prompt string, options []string) (int, error) {
	fmt.Fprintln(p.Out, prompt)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprint(p.Out, "Enter choice: ")

	line, err := p.readLine()
	if err != nil {
		return -1, fmt.Errorf("reading choice: %w", err)
	}

	var choice int
	if _, err := fmt.Sscanf(line, "%d", &choice); err != nil {
		return -1, fmt.Errorf("invalid choice %q", line)
	}
	if choice < 1 || choice > len(options) {
		return -1, fmt.Errorf("choice %d out of range [1-%d]", choice, len(options))
	}
	return choice - 1, nil
}

// Confirm prompts for yes/no confirmation. Anything but y/yes is no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.Out, prompt+" [y/N]: ")
	line, err := p.readLine()
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes", nil
}
