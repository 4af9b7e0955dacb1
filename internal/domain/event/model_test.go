package event

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"draft", "Registration", " AUCTION ", "completed"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
	}

	if _, err := ParseStatus("archived"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestTransition_StampsAuctionStartOnce(t *testing.T) {
	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	e := Event{ID: "evt-1", Name: "Summer Cup", ShareableLink: "link", Status: StatusRegistration}

	e.Transition(StatusAuction, first)
	if e.AuctionStartedAt == nil || !e.AuctionStartedAt.Equal(first) {
		t.Fatalf("expected auction start stamped at %v, got %v", first, e.AuctionStartedAt)
	}

	e.Transition(StatusRegistration, later)
	e.Transition(StatusAuction, later)
	if !e.AuctionStartedAt.Equal(first) {
		t.Fatalf("expected auction start to remain %v after re-entry, got %v", first, e.AuctionStartedAt)
	}
}

func TestTransition_NonAuctionLeavesStampUnset(t *testing.T) {
	e := Event{Status: StatusDraft}
	e.Transition(StatusCompleted, time.Now())
	if e.AuctionStartedAt != nil {
		t.Fatalf("did not expect auction start stamp for %s", e.Status)
	}
}
