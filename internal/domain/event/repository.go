package event

import (
	"context"
	"errors"
)

// ErrLinkTaken reports a shareable-link collision at the storage layer.
var ErrLinkTaken = errors.New("event shareable link already exists")

// Repository describes event persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Event) error
	GetByID(ctx context.Context, id string) (Event, bool, error)
	GetByLink(ctx context.Context, link string) (Event, bool, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, item Event) error
	Delete(ctx context.Context, id string) error
}
