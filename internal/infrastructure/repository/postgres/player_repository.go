package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bidwire/cricket-auction/internal/domain/player"
	qb "github.com/bidwire/cricket-auction/internal/platform/querybuilder"
)

// playerFingerprintConstraint is the unique index on
// players(event_public_id, fingerprint).
const playerFingerprintConstraint = "players_event_fingerprint_key"

// Listing orders: registrations newest first, sales most recent first.
var (
	registrationOrder = []string{"registered_at DESC", "id"}
	saleOrder         = []string{"auctioned_at DESC", "id"}
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns(
			"public_id", "event_public_id", "name", "age", "type", "image",
			"registered_at", "auctioned", "auctioned_at", "team_public_id",
			"sold_price", "fingerprint",
		).
		Values(
			item.ID, item.EventID, item.Name, item.Age, string(item.Type), item.Image,
			item.RegisteredAt, item.Auctioned, item.AuctionedAt, nullString(item.TeamID),
			nullFloat64(item.SoldPrice), item.Fingerprint,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == playerFingerprintConstraint {
			return player.ErrDuplicateFingerprint
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", id))
}

func (r *PlayerRepository) GetByFingerprint(ctx context.Context, eventID, fingerprint string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("event_public_id", eventID), qb.Eq("fingerprint", fingerprint))
}

func (r *PlayerRepository) ListByEvent(ctx context.Context, eventID string) ([]player.Player, error) {
	return r.list(ctx, registrationOrder, qb.Eq("event_public_id", eventID))
}

func (r *PlayerRepository) ListSoldByEvent(ctx context.Context, eventID string) ([]player.Player, error) {
	return r.list(ctx, saleOrder, qb.Eq("event_public_id", eventID), qb.Eq("auctioned", true))
}

func (r *PlayerRepository) ListSoldByTeam(ctx context.Context, eventID, teamID string) ([]player.Player, error) {
	return r.list(ctx, saleOrder,
		qb.Eq("event_public_id", eventID),
		qb.Eq("auctioned", true),
		qb.Eq("team_public_id", teamID),
	)
}

func (r *PlayerRepository) ListUnauctioned(ctx context.Context, eventID string, roleType player.RoleType) ([]player.Player, error) {
	conditions := []qb.Condition{
		qb.Eq("event_public_id", eventID),
		qb.Eq("auctioned", false),
	}
	if roleType != "" {
		conditions = append(conditions, qb.Eq("type", string(roleType)))
	}
	return r.list(ctx, registrationOrder, conditions...)
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", item.Name).
		Set("age", item.Age).
		Set("type", string(item.Type)).
		Set("image", item.Image).
		Set("auctioned", item.Auctioned).
		Set("auctioned_at", item.AuctionedAt).
		Set("team_public_id", nullString(item.TeamID)).
		Set("sold_price", nullFloat64(item.SoldPrice)).
		Set("fingerprint", item.Fingerprint).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("event_public_id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete players by event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete players by event: %w", err)
	}
	return nil
}

func (r *PlayerRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	return r.count(ctx, qb.Eq("event_public_id", eventID))
}

func (r *PlayerRepository) CountAuctionedByEvent(ctx context.Context, eventID string) (int, error) {
	return r.count(ctx, qb.Eq("event_public_id", eventID), qb.Eq("auctioned", true))
}

func (r *PlayerRepository) CountByType(ctx context.Context, eventID string) (player.TypeCounts, error) {
	return r.countByType(ctx, qb.Eq("event_public_id", eventID))
}

func (r *PlayerRepository) CountAuctionedByType(ctx context.Context, eventID string) (player.TypeCounts, error) {
	return r.countByType(ctx, qb.Eq("event_public_id", eventID), qb.Eq("auctioned", true))
}

func (r *PlayerRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	return r.count(ctx, qb.Eq("team_public_id", teamID))
}

func (r *PlayerRepository) getOne(ctx context.Context, conditions ...qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) list(ctx context.Context, orderBy []string, conditions ...qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(conditions...).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) count(ctx context.Context, conditions ...qb.Condition) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("players").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return total, nil
}

func (r *PlayerRepository) countByType(ctx context.Context, conditions ...qb.Condition) (player.TypeCounts, error) {
	query, args, err := qb.Select("type", "COUNT(*) AS total").From("players").
		Where(conditions...).
		GroupBy("type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count players by type query: %w", err)
	}

	var rows []struct {
		Type  string `db:"type"`
		Total int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count players by type: %w", err)
	}

	counts := make(player.TypeCounts, len(rows))
	for _, row := range rows {
		counts[player.RoleType(row.Type)] = row.Total
	}
	return counts, nil
}
