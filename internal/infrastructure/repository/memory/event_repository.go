package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bidwire/cricket-auction/internal/domain/event"
)

// EventRepository is an in-memory event store. It enforces the same
// shareable-link uniqueness rule as the postgres schema.
type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{items: make(map[string]event.Event)}
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("event %s already exists", item.ID)
	}
	for _, existing := range r.items {
		if existing.ShareableLink == item.ShareableLink {
			return event.ErrLinkTaken
		}
	}

	r.items[item.ID] = item
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *EventRepository) GetByLink(ctx context.Context, link string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ShareableLink == link {
			return item, true, nil
		}
	}
	return event.Event{}, false, nil
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, item event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("event %s not found", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
