package i18n

import "testing"

func TestTranslateKnownKeys(t *testing.T) {
	tr := NewTranslator("en")

	tests := []struct {
		locale string
		key    string
		want   string
	}{
		{"so", "nav.workshops", "Tababarro"},
		{"en", "nav.workshops", "Workshops"},
		{"so", "nav.home", "Guriga"},
		{"en", "common.register", "Register"},
		{"so", "api.workshopFull", "Tababarku waa buuxaa"},
		{"en", "api.workshopFull", "Workshop is full"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.locale, tt.key); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestTranslateMissingKeyEchoesKey(t *testing.T) {
	tr := NewTranslator("en")

	// Deliberate fail-soft behavior: a missing key degrades to a visible
	// placeholder instead of an error.
	if got := tr.T("en", "nav.nonexistent"); got != "nav.nonexistent" {
		t.Errorf("T(en, nav.nonexistent) = %q, want the key back", got)
	}
	if got := tr.T("so", "totally.made.up"); got != "totally.made.up" {
		t.Errorf("T(so, totally.made.up) = %q, want the key back", got)
	}
}

func TestTranslateUnknownLocaleFallsBack(t *testing.T) {
	tr := NewTranslator("en")
	if got := tr.T("fr", "nav.workshops"); got != "Workshops" {
		t.Errorf("T(fr, nav.workshops) = %q, want english fallback", got)
	}
	if got := tr.T("", "nav.workshops"); got != "Workshops" {
		t.Errorf("T with empty locale = %q, want english fallback", got)
	}
}

func TestTranslateEmptyKey(t *testing.T) {
	tr := NewTranslator("en")
	if got := tr.T("en", ""); got != "" {
		t.Errorf("T(en, \"\") = %q, want empty string", got)
	}
}
