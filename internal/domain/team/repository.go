package team

import (
	"context"
	"errors"
)

// ErrNameTaken reports a team-name uniqueness violation at the storage layer.
var ErrNameTaken = errors.New("team name already exists")

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Team) error
	GetByID(ctx context.Context, id string) (Team, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, id string) error
}
