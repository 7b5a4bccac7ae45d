package utils

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"trading_stats", "ai_decisions", "_tmp", "Runtime2", strings.Repeat("a", 63)}
	for _, name := range valid {
		if err := ValidateIdentifier(name); err != nil {
			t.Errorf("ValidateIdentifier(%q) unexpected error: %v", name, err)
		}
	}

	invalid := []string{"", "1table", "trading-stats", "stats; DROP TABLE x", "public.stats", `"quoted"`, strings.Repeat("a", 64)}
	for _, name := range invalid {
		if err := ValidateIdentifier(name); err == nil {
			t.Errorf("ValidateIdentifier(%q) expected error", name)
		}
	}
}
