package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/player"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrStorage      = errors.New("storage failure")
)

// DuplicatePlayerError rejects a registration whose fingerprint is already
// taken within the event. It carries the existing player's identity so the
// API can tell the organizer who the clash is with.
type DuplicatePlayerError struct {
	Name         string
	Age          int
	Type         player.RoleType
	RegisteredAt time.Time
}

func (e *DuplicatePlayerError) Error() string {
	return fmt.Sprintf("player already registered: %s (age %d, %s)", e.Name, e.Age, e.Type)
}

func (e *DuplicatePlayerError) Unwrap() error {
	return ErrConflict
}

func newDuplicatePlayerError(existing player.Player) *DuplicatePlayerError {
	return &DuplicatePlayerError{
		Name:         existing.Name,
		Age:          existing.Age,
		Type:         existing.Type,
		RegisteredAt: existing.RegisteredAt,
	}
}
