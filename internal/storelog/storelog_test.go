package storelog

import "testing"

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"warn":    "WARN",
		"error":   "ERROR",
		"info":    "INFO",
		"garbage": "INFO",
		"":        "INFO",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNew_ReturnsNonNilLogger(t *testing.T) {
	if l := New("debug", "text"); l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l := New("info", "json"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}
