package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/player"
)

// PlayerRepository is an in-memory player store. It enforces the
// (event, fingerprint) uniqueness rule the postgres schema carries, which is
// what makes it usable as the concurrency authority in tests.
type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[string]player.Player)}
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("player %s already exists", item.ID)
	}
	for _, existing := range r.items {
		if existing.EventID == item.EventID && existing.Fingerprint == item.Fingerprint {
			return player.ErrDuplicateFingerprint
		}
	}

	r.items[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return clonePlayer(item), ok, nil
}

func (r *PlayerRepository) GetByFingerprint(ctx context.Context, eventID, fingerprint string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.EventID == eventID && item.Fingerprint == fingerprint {
			return clonePlayer(item), true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) ListByEvent(ctx context.Context, eventID string) ([]player.Player, error) {
	out := r.list(func(p player.Player) bool { return p.EventID == eventID })
	sortByRegistration(out)
	return out, nil
}

func (r *PlayerRepository) ListSoldByEvent(ctx context.Context, eventID string) ([]player.Player, error) {
	out := r.list(func(p player.Player) bool { return p.EventID == eventID && p.Auctioned })
	sortBySale(out)
	return out, nil
}

func (r *PlayerRepository) ListSoldByTeam(ctx context.Context, eventID, teamID string) ([]player.Player, error) {
	out := r.list(func(p player.Player) bool {
		return p.EventID == eventID && p.Auctioned && p.TeamID != nil && *p.TeamID == teamID
	})
	sortBySale(out)
	return out, nil
}

func (r *PlayerRepository) ListUnauctioned(ctx context.Context, eventID string, roleType player.RoleType) ([]player.Player, error) {
	out := r.list(func(p player.Player) bool {
		if p.EventID != eventID || p.Auctioned {
			return false
		}
		return roleType == "" || p.Type == roleType
	})
	sortByRegistration(out)
	return out, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("player %s not found", item.ID)
	}
	r.items[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *PlayerRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.EventID == eventID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *PlayerRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	return len(r.list(func(p player.Player) bool { return p.EventID == eventID })), nil
}

func (r *PlayerRepository) CountAuctionedByEvent(ctx context.Context, eventID string) (int, error) {
	return len(r.list(func(p player.Player) bool { return p.EventID == eventID && p.Auctioned })), nil
}

func (r *PlayerRepository) CountByType(ctx context.Context, eventID string) (player.TypeCounts, error) {
	return r.countByType(eventID, false), nil
}

func (r *PlayerRepository) CountAuctionedByType(ctx context.Context, eventID string) (player.TypeCounts, error) {
	return r.countByType(eventID, true), nil
}

func (r *PlayerRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	return len(r.list(func(p player.Player) bool {
		return p.TeamID != nil && *p.TeamID == teamID
	})), nil
}

func (r *PlayerRepository) countByType(eventID string, auctionedOnly bool) player.TypeCounts {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(player.TypeCounts)
	for _, item := range r.items {
		if item.EventID != eventID {
			continue
		}
		if auctionedOnly && !item.Auctioned {
			continue
		}
		counts[item.Type]++
	}
	return counts
}

func (r *PlayerRepository) list(match func(player.Player) bool) []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, clonePlayer(item))
		}
	}
	return out
}

// sortByRegistration orders newest registration first, ID as tie-break.
func sortByRegistration(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].RegisteredAt.Equal(items[j].RegisteredAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].RegisteredAt.After(items[j].RegisteredAt)
	})
}

// sortBySale orders most recent sale first, ID as tie-break.
func sortBySale(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		it, jt := saleTime(items[i]), saleTime(items[j])
		if it.Equal(jt) {
			return items[i].ID < items[j].ID
		}
		return it.After(jt)
	})
}

func saleTime(p player.Player) time.Time {
	if p.AuctionedAt != nil {
		return *p.AuctionedAt
	}
	return time.Time{}
}

func clonePlayer(item player.Player) player.Player {
	out := item
	if item.AuctionedAt != nil {
		at := *item.AuctionedAt
		out.AuctionedAt = &at
	}
	if item.TeamID != nil {
		id := *item.TeamID
		out.TeamID = &id
	}
	if item.SoldPrice != nil {
		price := *item.SoldPrice
		out.SoldPrice = &price
	}
	return out
}
