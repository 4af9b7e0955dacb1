package team

import (
	"fmt"
	"strings"
	"time"
)

// DefaultColor is applied when a team is created without one.
const DefaultColor = "#667eea"

// Team is a bidding side. Teams exist independently of events and are
// referenced by sold players.
type Team struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Color == "" {
		return fmt.Errorf("team color is required")
	}

	return nil
}
