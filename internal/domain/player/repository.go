package player

import (
	"context"
	"errors"
)

// ErrDuplicateFingerprint is returned by Create when the (event, fingerprint)
// uniqueness constraint rejects the insert. The storage layer is the
// authority: a pre-check in the workflow can pass and still lose the race.
var ErrDuplicateFingerprint = errors.New("player fingerprint already registered for event")

// TypeCounts maps role type to a player count for the stats view.
type TypeCounts map[RoleType]int

// Repository describes player persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Player) error
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByFingerprint(ctx context.Context, eventID, fingerprint string) (Player, bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]Player, error)
	ListSoldByEvent(ctx context.Context, eventID string) ([]Player, error)
	ListSoldByTeam(ctx context.Context, eventID, teamID string) ([]Player, error)
	// ListUnauctioned returns the open pool for an event, optionally filtered
	// by role type (empty roleType means all types).
	ListUnauctioned(ctx context.Context, eventID string, roleType RoleType) ([]Player, error)
	Update(ctx context.Context, item Player) error
	Delete(ctx context.Context, id string) error
	DeleteByEvent(ctx context.Context, eventID string) error
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CountAuctionedByEvent(ctx context.Context, eventID string) (int, error)
	CountByType(ctx context.Context, eventID string) (TypeCounts, error)
	CountAuctionedByType(ctx context.Context, eventID string) (TypeCounts, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
}
