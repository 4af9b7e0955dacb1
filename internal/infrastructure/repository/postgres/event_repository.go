package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	qb "github.com/bidwire/cricket-auction/internal/platform/querybuilder"
)

// eventLinkConstraint is the unique index on events.shareable_link.
const eventLinkConstraint = "events_shareable_link_key"

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) error {
	query, args, err := qb.InsertInto("events").
		Columns("public_id", "name", "description", "shareable_link", "status", "created_at", "auction_started_at").
		Values(item.ID, item.Name, item.Description, item.ShareableLink, string(item.Status), item.CreatedAt, item.AuctionStartedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == eventLinkConstraint {
			return event.ErrLinkTaken
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", id))
}

func (r *EventRepository) GetByLink(ctx context.Context, link string) (event.Event, bool, error) {
	return r.getOne(ctx, qb.Eq("shareable_link", link))
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, item event.Event) error {
	query, args, err := qb.Update("events").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("status", string(item.Status)).
		Set("auction_started_at", item.AuctionStartedAt).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("events").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *EventRepository) getOne(ctx context.Context, condition qb.Condition) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build select event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("select event: %w", err)
	}
	return row.toDomain(), true, nil
}
