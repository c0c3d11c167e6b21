package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPanelRenderSuccess(t *testing.T) {
	SetColorEnabled(false)
	p := Panel{
		OK:    true,
		Title: "Added Google Gemini credential",
		Fields: []Field{
			{"Provider", "Google Gemini"},
			{"Method", "API Key"},
			{"File", "/home/u/.cli-proxy-api/gemini-20260101000000.json"},
		},
		Notes: []string{"Run 'proxypal auth list' to view all credentials."},
	}

	got := p.Render()
	for _, want := range []string{
		"✓ Added Google Gemini credential",
		"  Provider:  Google Gemini\n",
		"  Method:    API Key\n",
		"  File:      /home/u/.cli-proxy-api/gemini-20260101000000.json\n",
		"  Run 'proxypal auth list' to view all credentials.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Suggestions") {
		t.Errorf("success panel without suggestions should not show the heading:\n%s", got)
	}
	if strings.Count(got, strings.Repeat("═", 60)) != 2 {
		t.Errorf("expected two rules:\n%s", got)
	}
}

func TestPanelRenderFailure(t *testing.T) {
	SetColorEnabled(false)
	p := Panel{
		Title:       "Failed to add Anthropic Claude credential",
		Fields:      []Field{{"Error", "permission denied"}},
		Suggestions: []string{"Check permissions on the credential directory"},
	}

	var buf bytes.Buffer
	p.Print(&buf)
	got := buf.String()
	for _, want := range []string{
		"✗ Failed to add Anthropic Claude credential",
		"  Error:  permission denied\n",
		"  Suggestions:\n  • Check permissions on the credential directory\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Print() missing %q:\n%s", want, got)
		}
	}
}

func TestSummary(t *testing.T) {
	SetColorEnabled(false)
	got := Summary("Import summary", []SummaryItem{
		{OK: true, Name: "claude.json", Detail: "claude"},
		{OK: false, Name: "notes.yaml", Detail: "no API key found in file"},
		{OK: true, Name: "keys.env", Detail: "openai"},
	})

	for _, want := range []string{
		"IMPORT SUMMARY",
		"✓ Succeeded: 2\n    • claude (claude.json)\n    • openai (keys.env)\n",
		"✗ Failed: 1\n    • notes.yaml: no API key found in file\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	SetColorEnabled(false)
	got := Summary("Import summary", nil)
	if !strings.Contains(got, "Nothing to do.") {
		t.Errorf("empty summary = %q", got)
	}
	if strings.Contains(got, "Succeeded") || strings.Contains(got, "Failed") {
		t.Errorf("empty summary should not list sections: %q", got)
	}
}
