package app

import (
	"strings"
	"testing"
)

func TestNormalizeDBURL(t *testing.T) {
	t.Run("appends disable flag", func(t *testing.T) {
		got := normalizeDBURL("postgres://u:p@localhost:5432/cricket_auction?sslmode=disable", true)
		if !strings.Contains(got, "disable_prepared_binary_result=yes") {
			t.Fatalf("expected flag appended, got %q", got)
		}
		if !strings.Contains(got, "sslmode=disable") {
			t.Fatalf("expected existing params preserved, got %q", got)
		}
	})

	t.Run("keeps explicit flag", func(t *testing.T) {
		raw := "postgres://u:p@localhost:5432/cricket_auction?disable_prepared_binary_result=no"
		got := normalizeDBURL(raw, true)
		if !strings.Contains(got, "disable_prepared_binary_result=no") {
			t.Fatalf("expected existing flag kept, got %q", got)
		}
	})

	t.Run("untouched when disabled", func(t *testing.T) {
		raw := "postgres://u:p@localhost:5432/cricket_auction"
		if got := normalizeDBURL(raw, false); got != raw {
			t.Fatalf("expected url untouched, got %q", got)
		}
	})
}

func TestDBNameFromURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/cricket_auction?sslmode=disable": "cricket_auction",
		"host=localhost dbname=cricket_auction sslmode=disable":         "cricket_auction",
		`host=localhost dbname="cricket_auction"`:                       "cricket_auction",
		"postgres://u:p@localhost:5432/":                                "",
		"":                                                              "",
	}
	for raw, want := range cases {
		if got := dbNameFromURL(raw); got != want {
			t.Fatalf("dbNameFromURL(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFormatQueryForTrace(t *testing.T) {
	got := formatQueryForTrace("SELECT *\n\t FROM   players\n WHERE event_public_id = $1")
	if got != "SELECT * FROM players WHERE event_public_id = $1" {
		t.Fatalf("unexpected normalized query: %q", got)
	}

	long := strings.Repeat("SELECT 1 ", 200)
	got = formatQueryForTrace(long)
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got length %d", len(got))
	}
}
