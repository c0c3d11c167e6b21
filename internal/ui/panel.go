package ui

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 60

func rule() string {
	return strings.Repeat("═", ruleWidth)
}

// Field is one labelled line inside a panel.
type Field struct {
	Label string
	Value string
}

// Panel is a boxed report of a single flow's outcome.
type Panel struct {
	OK     bool
	Title  string
	Fields []Field
	// Notes are free-form lines shown after the fields.
	Notes       []string
	Suggestions []string
}

// Render formats the panel as text.
func (p Panel) Render() string {
	var b strings.Builder
	b.WriteString("\n" + rule() + "\n")

	tag := OKTag()
	if !p.OK {
		tag = FailTag()
	}
	fmt.Fprintf(&b, "  %s %s\n", tag, Bold(p.Title))

	if len(p.Fields) > 0 {
		b.WriteString("\n")
		width := 0
		for _, f := range p.Fields {
			if len(f.Label) > width {
				width = len(f.Label)
			}
		}
		for _, f := range p.Fields {
			fmt.Fprintf(&b, "  %-*s  %s\n", width+1, f.Label+":", f.Value)
		}
	}

	if len(p.Notes) > 0 {
		b.WriteString("\n")
		for _, n := range p.Notes {
			fmt.Fprintf(&b, "  %s\n", n)
		}
	}

	if len(p.Suggestions) > 0 {
		b.WriteString("\n  Suggestions:\n")
		for _, s := range p.Suggestions {
			fmt.Fprintf(&b, "  • %s\n", s)
		}
	}

	b.WriteString(rule() + "\n\n")
	return b.String()
}

// Print writes the rendered panel to w.
func (p Panel) Print(w io.Writer) {
	io.WriteString(w, p.Render())
}

// SummaryItem is one row of a batch summary.
type SummaryItem struct {
	OK     bool
	Name   string
	Detail string
}

// Summary renders a batch result split into succeeded and failed sections.
func Summary(title string, items []SummaryItem) string {
	var ok, failed []SummaryItem
	for _, it := range items {
		if it.OK {
			ok = append(ok, it)
		} else {
			failed = append(failed, it)
		}
	}

	var b strings.Builder
	b.WriteString("\n" + rule() + "\n")
	fmt.Fprintf(&b, "  %s\n", Bold(strings.ToUpper(title)))
	b.WriteString(rule() + "\n")

	if len(items) == 0 {
		b.WriteString("\n  Nothing to do.\n")
	}
	if len(ok) > 0 {
		fmt.Fprintf(&b, "\n  %s Succeeded: %d\n", OKTag(), len(ok))
		for _, it := range ok {
			fmt.Fprintf(&b, "    • %s (%s)\n", it.Detail, it.Name)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, "\n  %s Failed: %d\n", FailTag(), len(failed))
		for _, it := range failed {
			fmt.Fprintf(&b, "    • %s: %s\n", it.Name, it.Detail)
		}
	}

	b.WriteString("\n" + rule() + "\n\n")
	return b.String()
}
