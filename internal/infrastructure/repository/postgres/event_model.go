package postgres

import (
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/event"
)

type eventTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	Name             string     `db:"name"`
	Description      string     `db:"description"`
	ShareableLink    string     `db:"shareable_link"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
	AuctionStartedAt *time.Time `db:"auction_started_at"`
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		ID:               m.PublicID,
		Name:             m.Name,
		Description:      m.Description,
		ShareableLink:    m.ShareableLink,
		Status:           event.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		AuctionStartedAt: m.AuctionStartedAt,
	}
}
