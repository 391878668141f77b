package slug

import (
	"regexp"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"accents and punctuation", "Café Quente!", "cafe-quente"},
		{"already a slug", "tenis-azul", "tenis-azul"},
		{"mixed case and spaces", "  Tênis   Azul  ", "tenis-azul"},
		{"symbols collapse", "Camisa #1 (P/M/G)", "camisa-1-p-m-g"},
		{"cedilla and tilde", "Coração de Limão", "coracao-de-limao"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.title, false); got != tt.expected {
				t.Errorf("Generate(%q, false) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

func TestGenerate_Unique(t *testing.T) {
	pattern := regexp.MustCompile(`^tenis-azul-[a-z0-9]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		got := Generate("Tênis Azul", true)
		if !pattern.MatchString(got) {
			t.Fatalf("Generate unique = %q, want match %s", got, pattern)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("expected random suffixes to differ across calls")
	}
}
