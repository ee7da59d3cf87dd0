// Package prompt collects category values from the user, one line per name.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/spendmap/spendmap/internal/categorize"
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	color bool
	eof   bool
}

// New returns a Prompter.
func New(in io.Reader, out io.Writer, useColor bool) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out, color: useColor}
}

func (p *Prompter) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// readLine returns the next trimmed line. ok is false once input is exhausted.
func (p *Prompter) readLine() (string, bool, error) {
	if p.eof {
		return "", false, nil
	}
	if !p.in.Scan() {
		p.eof = true
		if err := p.in.Err(); err != nil {
			return "", false, fmt.Errorf("reading input: %w", err)
		}
		return "", false, nil
	}
	return strings.TrimSpace(p.in.Text()), true, nil
}

// Categories asks for a category for every name. An empty answer leaves the
// name uncategorized. When an answer is close to a known category the user
// is offered that spelling instead, keeping the typed answer unless the user
// accepts. Input ending early stops the questions
// without error.
func (p *Prompter) Categories(names, known []string) (map[string]string, error) {
	known = slices.Clone(known)
	proposals := make(map[string]string)
	if len(known) > 0 {
		fmt.Fprintf(p.out, "Known categories: %s\n", strings.Join(known, ", "))
	}

	for i, name := range names {
		fmt.Fprintf(p.out, "%s Enter category for: %s > ",
			p.paint(fmt.Sprintf("[%d/%d]", i+1, len(names)), color.FgBlue),
			p.paint(name, color.Bold))
		answer, ok, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintln(p.out)
			break
		}
		if answer == "" {
			continue
		}

		if s := categorize.Suggest(answer, known); s != "" && !slices.Contains(known, answer) {
			use, err := p.Confirm(fmt.Sprintf("Use existing category %q instead of %q?", s, answer), false)
			if err != nil {
				return nil, err
			}
			if use {
				answer = s
			}
		}
		proposals[name] = answer
		if !slices.Contains(known, answer) {
			known = append(known, answer)
		}
	}
	return proposals, nil
}

// Confirm asks a yes/no question. An empty answer or exhausted input picks def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s ", question, hint)
	answer, ok, err := p.readLine()
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(p.out)
		return def, nil
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}
