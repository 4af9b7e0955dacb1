package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/infrastructure/imagestore"
	"github.com/bidwire/cricket-auction/internal/platform/id"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
)

// EventService owns the event lifecycle, including the cascade delete that
// removes the event's players and their image artifacts.
type EventService struct {
	eventRepo  event.Repository
	playerRepo player.Repository
	images     imagestore.Store
	idGen      id.Generator
	cleanup    *ants.Pool
	logger     *logging.Logger
	now        func() time.Time
}

func NewEventService(
	eventRepo event.Repository,
	playerRepo player.Repository,
	images imagestore.Store,
	idGen id.Generator,
	cleanup *ants.Pool,
	logger *logging.Logger,
) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventService{
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		images:     images,
		idGen:      idGen,
		cleanup:    cleanup,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateEventParams struct {
	Name        string
	Description string
}

// CreateEvent opens a new event directly in the registration phase with a
// fresh shareable link.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.CreateEvent")
	defer span.End()

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return event.Event{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}

	eventID, err := s.idGen.NewID("evt")
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	item := event.Event{
		ID:            eventID,
		Name:          name,
		Description:   strings.TrimSpace(params.Description),
		ShareableLink: uuid.NewString(),
		Status:        event.StatusRegistration,
		CreatedAt:     s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.eventRepo.Create(ctx, item); err != nil {
		if errors.Is(err, event.ErrLinkTaken) {
			return event.Event{}, fmt.Errorf("%w: shareable link collision", ErrConflict)
		}
		return event.Event{}, fmt.Errorf("create event: %w", err)
	}

	s.logger.InfoContext(ctx, "event created", "event_id", item.ID)
	return item, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ListEvents")
	defer span.End()

	items, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.GetEvent")
	defer span.End()

	return s.getEvent(ctx, eventID)
}

// GetEventByLink resolves the shareable registration link.
func (s *EventService) GetEventByLink(ctx context.Context, link string) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.GetEventByLink")
	defer span.End()

	link = strings.TrimSpace(link)
	if link == "" {
		return event.Event{}, fmt.Errorf("%w: shareable link is required", ErrInvalidInput)
	}

	item, exists, err := s.eventRepo.GetByLink(ctx, link)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event by link: %w", err)
	}
	if !exists {
		return event.Event{}, fmt.Errorf("%w: event link=%s", ErrNotFound, link)
	}
	return item, nil
}

type UpdateEventParams struct {
	Name        *string
	Description *string
	Status      *string
}

// UpdateEvent applies a partial update. A status value goes through the
// same transition rules as the status endpoint.
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, params UpdateEventParams) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.UpdateEvent")
	defer span.End()

	item, err := s.getEvent(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return event.Event{}, fmt.Errorf("%w: event name cannot be empty", ErrInvalidInput)
		}
		item.Name = name
	}
	if params.Description != nil {
		item.Description = strings.TrimSpace(*params.Description)
	}
	if params.Status != nil {
		next, err := event.ParseStatus(*params.Status)
		if err != nil {
			return event.Event{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		item.Transition(next, s.now().UTC())
	}

	if err := s.eventRepo.Update(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("update event: %w", err)
	}
	return item, nil
}

// UpdateEventStatus moves the event to the given phase. The first entry into
// auction stamps the start time; later entries keep the original stamp.
func (s *EventService) UpdateEventStatus(ctx context.Context, eventID, status string) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.UpdateEventStatus")
	defer span.End()

	item, err := s.getEvent(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}

	next, err := event.ParseStatus(status)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	item.Transition(next, s.now().UTC())

	if err := s.eventRepo.Update(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("update event status: %w", err)
	}

	s.logger.InfoContext(ctx, "event status changed", "event_id", item.ID, "status", string(item.Status))
	return item, nil
}

// DeleteEvent removes the event and everything it owns: players first, then
// the event row, then the image artifacts. A failure between the two storage
// deletes surfaces as ErrStorage rather than silent success.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "EventService.DeleteEvent")
	defer span.End()

	item, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}

	players, err := s.playerRepo.ListByEvent(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("%w: list event players: %s", ErrStorage, err)
	}

	if err := s.playerRepo.DeleteByEvent(ctx, item.ID); err != nil {
		return fmt.Errorf("%w: delete event players: %s", ErrStorage, err)
	}
	if err := s.eventRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("%w: delete event: %s", ErrStorage, err)
	}

	s.cleanupImages(players)
	s.logger.InfoContext(ctx, "event deleted", "event_id", item.ID, "players", len(players))
	return nil
}

// cleanupImages removes artifacts best-effort on the shared worker pool;
// the database rows are already gone so failures are only logged.
func (s *EventService) cleanupImages(players []player.Player) {
	if s.images == nil {
		return
	}

	for _, p := range players {
		ref := p.Image
		if ref == "" {
			continue
		}

		task := func() {
			if err := s.images.Delete(context.Background(), ref); err != nil {
				s.logger.Warn("image cleanup failed", "ref", ref, "error", err)
			}
		}
		if s.cleanup == nil {
			task()
			continue
		}
		if err := s.cleanup.Submit(task); err != nil {
			task()
		}
	}
}

func (s *EventService) getEvent(ctx context.Context, eventID string) (event.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return event.Event{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return event.Event{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	return item, nil
}
