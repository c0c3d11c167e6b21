package auth

import (
	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/ui"
)

// Panel renders r as a success or failure panel.
func (r Result) Panel() ui.Panel {
	e := r.Entry()
	if !r.OK {
		p := ui.Panel{
			Title:       "Failed to add " + nameOf(e) + " credential",
			Fields:      []ui.Field{{Label: "Error", Value: r.Message}},
			Suggestions: Suggestions(Kind(r.Err), e),
		}
		if r.Method != 0 {
			p.Fields = append([]ui.Field{{Label: "Method", Value: r.Method.Label()}}, p.Fields...)
		}
		return p
	}

	p := ui.Panel{
		OK:    true,
		Title: "Added " + nameOf(e) + " credential",
		Fields: []ui.Field{
			{Label: "Provider", Value: e.ID},
			{Label: "Method", Value: methodLabel(r.Method)},
			{Label: "File", Value: r.Path},
		},
	}
	for _, w := range r.Warnings {
		p.Notes = append(p.Notes, ui.WarnTag()+" "+w)
	}
	p.Notes = append(p.Notes, "Run 'proxypal auth list' to view all credentials.")
	return p
}

func methodLabel(m provider.Method) string {
	if m == provider.MethodDeviceCode {
		return "OAuth Device Code"
	}
	return m.Label()
}
