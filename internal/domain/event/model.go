package event

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle phase of an auction event.
type Status string

const (
	StatusDraft        Status = "draft"
	StatusRegistration Status = "registration"
	StatusAuction      Status = "auction"
	StatusCompleted    Status = "completed"
)

var AllStatuses = map[Status]struct{}{
	StatusDraft:        {},
	StatusRegistration: {},
	StatusAuction:      {},
	StatusCompleted:    {},
}

func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if _, ok := AllStatuses[s]; !ok {
		return "", fmt.Errorf("invalid event status: %q", v)
	}
	return s, nil
}

// Event is one auction session with its own player pool and lifecycle.
type Event struct {
	ID               string
	Name             string
	Description      string
	ShareableLink    string
	Status           Status
	CreatedAt        time.Time
	AuctionStartedAt *time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("event name is required")
	}
	if e.ShareableLink == "" {
		return fmt.Errorf("event shareable link is required")
	}
	if _, ok := AllStatuses[e.Status]; !ok {
		return fmt.Errorf("invalid event status: %s", e.Status)
	}

	return nil
}

// Transition sets the status and stamps AuctionStartedAt on the first entry
// into auction. Re-entries never overwrite the stamp. Any status value is
// accepted: the update path is a documented escape hatch, only membership in
// the enum is enforced by Validate.
func (e *Event) Transition(next Status, now time.Time) {
	e.Status = next
	if next == StatusAuction && e.AuctionStartedAt == nil {
		at := now
		e.AuctionStartedAt = &at
	}
}
