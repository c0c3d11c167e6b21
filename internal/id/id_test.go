package id

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	for _, prefix := range []string{"flow", "import"} {
		t.Run(prefix, func(t *testing.T) {
			id1 := Generate(prefix)
			id2 := Generate(prefix)

			if !strings.HasPrefix(id1, prefix+"_") {
				t.Errorf("expected prefix %q, got %s", prefix+"_", id1)
			}
			if id1 == id2 {
				t.Errorf("expected unique IDs, got %s and %s", id1, id2)
			}
			if want := len(prefix) + 1 + 12; len(id1) != want {
				t.Errorf("expected length %d, got %d (%s)", want, len(id1), id1)
			}
		})
	}
}

func TestFlow(t *testing.T) {
	got := Flow()
	if !regexp.MustCompile(`^flow_[0-9a-f]{12}$`).MatchString(got) {
		t.Errorf("Flow() = %q, unexpected format", got)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Generate("test")
		if seen[id] {
			t.Errorf("collision detected: %s", id)
		}
		seen[id] = true
	}
}
