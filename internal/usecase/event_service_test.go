package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
)

func TestCreateEvent_OpensRegistrationWithLink(t *testing.T) {
	f := newFixture()

	item, err := f.events.CreateEvent(context.Background(), CreateEventParams{
		Name:        "  Summer Cup  ",
		Description: "annual auction",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if item.Name != "Summer Cup" {
		t.Fatalf("expected trimmed name, got %q", item.Name)
	}
	if item.Status != event.StatusRegistration {
		t.Fatalf("expected new event in registration, got %s", item.Status)
	}
	if item.ShareableLink == "" {
		t.Fatalf("expected a shareable link")
	}
	if item.AuctionStartedAt != nil {
		t.Fatalf("new event must not carry an auction start stamp")
	}

	found, err := f.events.GetEventByLink(context.Background(), item.ShareableLink)
	if err != nil {
		t.Fatalf("get by link: %v", err)
	}
	if found.ID != item.ID {
		t.Fatalf("link resolved to %s, expected %s", found.ID, item.ID)
	}
}

func TestCreateEvent_RequiresName(t *testing.T) {
	f := newFixture()

	if _, err := f.events.CreateEvent(context.Background(), CreateEventParams{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateEventStatus_StampsAuctionStartOnce(t *testing.T) {
	f := newFixture()
	evt := f.seedEvent(event.StatusRegistration)

	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	f.events.now = func() time.Time { return first }

	updated, err := f.events.UpdateEventStatus(context.Background(), evt.ID, "auction")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.AuctionStartedAt == nil || !updated.AuctionStartedAt.Equal(first) {
		t.Fatalf("expected auction start %v, got %v", first, updated.AuctionStartedAt)
	}

	f.events.now = func() time.Time { return first.Add(3 * time.Hour) }
	if _, err := f.events.UpdateEventStatus(context.Background(), evt.ID, "registration"); err != nil {
		t.Fatalf("reopen registration: %v", err)
	}
	updated, err = f.events.UpdateEventStatus(context.Background(), evt.ID, "auction")
	if err != nil {
		t.Fatalf("re-enter auction: %v", err)
	}
	if !updated.AuctionStartedAt.Equal(first) {
		t.Fatalf("re-entry must keep the first stamp %v, got %v", first, updated.AuctionStartedAt)
	}
}

func TestUpdateEvent_StatusViaGenericUpdateStampsToo(t *testing.T) {
	f := newFixture()
	evt := f.seedEvent(event.StatusRegistration)

	status := "auction"
	updated, err := f.events.UpdateEvent(context.Background(), evt.ID, UpdateEventParams{Status: &status})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Status != event.StatusAuction || updated.AuctionStartedAt == nil {
		t.Fatalf("expected generic update to run the same transition, got %+v", updated)
	}
}

func TestUpdateEventStatus_RejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	evt := f.seedEvent(event.StatusRegistration)

	if _, err := f.events.UpdateEventStatus(context.Background(), evt.ID, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteEvent_CascadesToPlayersAndArtifacts(t *testing.T) {
	f := newFixture()
	evt := f.seedEvent(event.StatusRegistration)
	other := f.seedEvent(event.StatusRegistration)

	doomed, err := f.register(evt.ID, "Alice", 25, player.RoleBatsman)
	if err != nil {
		t.Fatalf("register player: %v", err)
	}
	if _, err := f.register(evt.ID, "Bob", 30, player.RoleBowler); err != nil {
		t.Fatalf("register player: %v", err)
	}
	survivor, err := f.register(other.ID, "Carol", 28, player.RoleBattingAllrounder)
	if err != nil {
		t.Fatalf("register player: %v", err)
	}

	if err := f.events.DeleteEvent(context.Background(), evt.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	if _, exists, _ := f.eventRepo.GetByID(context.Background(), evt.ID); exists {
		t.Fatalf("expected event to be gone")
	}
	if _, exists, _ := f.playerRepo.GetByID(context.Background(), doomed.ID); exists {
		t.Fatalf("expected cascade to remove the event's players")
	}
	if _, exists, _ := f.playerRepo.GetByID(context.Background(), survivor.ID); !exists {
		t.Fatalf("cascade must not touch other events' players")
	}
	if deleted := f.images.deletedRefs(); len(deleted) != 2 {
		t.Fatalf("expected two image artifacts cleaned, got %v", deleted)
	}
}

func TestDeleteEvent_Unknown(t *testing.T) {
	f := newFixture()

	if err := f.events.DeleteEvent(context.Background(), "evt_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
