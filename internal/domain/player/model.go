package player

import (
	"fmt"
	"strings"
	"time"
)

// RoleType is one of the four fixed player categories.
type RoleType string

const (
	RoleBowler            RoleType = "Bowler"
	RoleBatsman           RoleType = "Batsman"
	RoleBowlingAllrounder RoleType = "Bowling Allrounder"
	RoleBattingAllrounder RoleType = "Batting Allrounder"
)

var AllRoleTypes = map[RoleType]struct{}{
	RoleBowler:            {},
	RoleBatsman:           {},
	RoleBowlingAllrounder: {},
	RoleBattingAllrounder: {},
}

// RoleTypes lists the four categories in their display order, used for the
// grouped auction view.
func RoleTypes() []RoleType {
	return []RoleType{RoleBatsman, RoleBowler, RoleBattingAllrounder, RoleBowlingAllrounder}
}

func ParseRoleType(v string) (RoleType, error) {
	r := RoleType(strings.TrimSpace(v))
	if _, ok := AllRoleTypes[r]; !ok {
		return "", fmt.Errorf("invalid player type: %q", v)
	}
	return r, nil
}

// Player is a registered participant in one event's auction pool.
type Player struct {
	ID           string
	EventID      string
	Name         string
	Age          int
	Type         RoleType
	Image        string
	RegisteredAt time.Time
	Auctioned    bool
	AuctionedAt  *time.Time
	TeamID       *string
	SoldPrice    *float64
	Fingerprint  string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.EventID == "" {
		return fmt.Errorf("player event id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Age < 1 || p.Age > 100 {
		return fmt.Errorf("player age must be between 1 and 100")
	}
	if _, ok := AllRoleTypes[p.Type]; !ok {
		return fmt.Errorf("invalid player type: %s", p.Type)
	}
	if p.Image == "" {
		return fmt.Errorf("player image is required")
	}
	if p.Fingerprint == "" {
		return fmt.Errorf("player fingerprint is required")
	}
	if p.Auctioned {
		if p.TeamID == nil || p.AuctionedAt == nil {
			return fmt.Errorf("auctioned player must carry a team and a sale timestamp")
		}
	} else if p.TeamID != nil || p.SoldPrice != nil || p.AuctionedAt != nil {
		return fmt.Errorf("unauctioned player cannot carry sale fields")
	}

	return nil
}
