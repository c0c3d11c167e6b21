package importer

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Format
	}{
		{"yaml extension wins", "creds.yaml", `{"api_key":"x"}`, FormatYAML},
		{"yml extension", "creds.YML", "anything", FormatYAML},
		{"env extension", "prod.env", "KEY=value", FormatEnv},
		{"env extension with json body", "x.env", `{"a":1}`, FormatEnv},
		{"json", "key.json", `{"api_key": "test"}`, FormatJSON},
		{"json leading whitespace", "key.txt", "\n  {\"key\": \"x\"}", FormatJSON},
		{"service account", "sa.json", `{"type":"service_account","project_id":"x"}`, FormatServiceAccount},
		{"service account empty project", "sa.json", `{"type":"service_account","project_id":""}`, FormatJSON},
		{"service account no project", "sa.json", `{"type":"service_account"}`, FormatJSON},
		{"invalid json still json", "bad.json", `{"api_key": `, FormatJSON},
		{"yaml sniffed", "creds", "provider: claude\napi_key: sk-ant-x", FormatYAML},
		{"env sniffed", "creds", "# comment\nOPENAI_API_KEY=sk-x", FormatEnv},
		{"colon with equals is env", "creds", "URL: a=b", FormatEnv},
		{"only comments", "creds", "# KEY=value\n\n", FormatUnknown},
		{"plain text", "creds.txt", "just a key", FormatUnknown},
		{"empty", "creds", "", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.path, tt.content); got != tt.want {
				t.Errorf("DetectFormat(%q, %q) = %v, want %v", tt.path, tt.content, got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := map[Format]string{
		FormatJSON:           "json",
		FormatYAML:           "yaml",
		FormatEnv:            "env",
		FormatServiceAccount: "service_account",
		FormatUnknown:        "unknown",
	}
	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}

func TestInferProvider(t *testing.T) {
	tests := []struct {
		secret string
		want   string
		wantOK bool
	}{
		{"sk-ant-api03-test", "claude", true},
		{"sk-proj-test", "openai", true},
		{"sk-", "openai", true},
		{"AIzaTest123", "gemini", true},
		{"ghp_test", "copilot", true},
		{"gho_test", "copilot", true},
		{"unknown", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := InferProvider(tt.secret)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("InferProvider(%q) = %q, %v; want %q, %v", tt.secret, got, ok, tt.want, tt.wantOK)
		}
	}
}
