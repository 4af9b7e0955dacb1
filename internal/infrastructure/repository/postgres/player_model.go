package postgres

import (
	"database/sql"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/player"
)

type playerTableModel struct {
	ID           int64           `db:"id"`
	PublicID     string          `db:"public_id"`
	EventID      string          `db:"event_public_id"`
	Name         string          `db:"name"`
	Age          int             `db:"age"`
	Type         string          `db:"type"`
	Image        string          `db:"image"`
	RegisteredAt time.Time       `db:"registered_at"`
	Auctioned    bool            `db:"auctioned"`
	AuctionedAt  *time.Time      `db:"auctioned_at"`
	TeamID       sql.NullString  `db:"team_public_id"`
	SoldPrice    sql.NullFloat64 `db:"sold_price"`
	Fingerprint  string          `db:"fingerprint"`
}

func (m playerTableModel) toDomain() player.Player {
	out := player.Player{
		ID:           m.PublicID,
		EventID:      m.EventID,
		Name:         m.Name,
		Age:          m.Age,
		Type:         player.RoleType(m.Type),
		Image:        m.Image,
		RegisteredAt: m.RegisteredAt,
		Auctioned:    m.Auctioned,
		AuctionedAt:  m.AuctionedAt,
		Fingerprint:  m.Fingerprint,
	}
	if m.TeamID.Valid {
		teamID := m.TeamID.String
		out.TeamID = &teamID
	}
	if m.SoldPrice.Valid {
		price := m.SoldPrice.Float64
		out.SoldPrice = &price
	}
	return out
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
