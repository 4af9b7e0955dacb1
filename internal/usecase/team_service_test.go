package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/domain/team"
)

func TestCreateTeam_AppliesDefaultColor(t *testing.T) {
	f := newFixture()

	item, err := f.teams.CreateTeam(context.Background(), CreateTeamParams{Name: "Strikers"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if item.Color != team.DefaultColor {
		t.Fatalf("expected default color %s, got %s", team.DefaultColor, item.Color)
	}

	colored, err := f.teams.CreateTeam(context.Background(), CreateTeamParams{Name: "Blasters", Color: "#112233"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if colored.Color != "#112233" {
		t.Fatalf("expected explicit color kept, got %s", colored.Color)
	}
}

func TestCreateTeam_DuplicateName(t *testing.T) {
	f := newFixture()

	if _, err := f.teams.CreateTeam(context.Background(), CreateTeamParams{Name: "Strikers"}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := f.teams.CreateTeam(context.Background(), CreateTeamParams{Name: "Strikers"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate name, got %v", err)
	}

	// name uniqueness is case-sensitive
	if _, err := f.teams.CreateTeam(context.Background(), CreateTeamParams{Name: "strikers"}); err != nil {
		t.Fatalf("expected differently-cased name to pass, got %v", err)
	}
}

func TestUpdateTeam(t *testing.T) {
	f := newFixture()
	item := f.seedTeam("Strikers")

	name := "Super Strikers"
	updated, err := f.teams.UpdateTeam(context.Background(), item.ID, UpdateTeamParams{Name: &name})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected renamed team, got %q", updated.Name)
	}

	other := f.seedTeam("Blasters")
	taken := "Super Strikers"
	if _, err := f.teams.UpdateTeam(context.Background(), other.ID, UpdateTeamParams{Name: &taken}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected rename onto taken name to conflict, got %v", err)
	}
}

func TestDeleteTeam_BlockedWhileReferenced(t *testing.T) {
	f := newFixture()
	evt := f.seedEvent(event.StatusRegistration)
	buyer := f.seedTeam("Strikers")

	item, err := f.register(evt.ID, "Alice", 25, player.RoleBatsman)
	if err != nil {
		t.Fatalf("register player: %v", err)
	}
	if _, err := f.players.SellPlayer(context.Background(), item.ID, SellPlayerParams{TeamID: buyer.ID, SoldPrice: 100}); err != nil {
		t.Fatalf("sell player: %v", err)
	}

	err = f.teams.DeleteTeam(context.Background(), buyer.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict while referenced, got %v", err)
	}
	if _, exists, _ := f.teamRepo.GetByID(context.Background(), buyer.ID); !exists {
		t.Fatalf("blocked delete must keep the team")
	}

	// once the sold player is gone the team can go too
	if err := f.players.DeletePlayer(context.Background(), item.ID); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if err := f.teams.DeleteTeam(context.Background(), buyer.ID); err != nil {
		t.Fatalf("delete team after unreference: %v", err)
	}
}

func TestDeleteTeam_Unreferenced(t *testing.T) {
	f := newFixture()
	item := f.seedTeam("Strikers")

	if err := f.teams.DeleteTeam(context.Background(), item.ID); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if _, exists, _ := f.teamRepo.GetByID(context.Background(), item.ID); exists {
		t.Fatalf("expected team to be gone")
	}
}
