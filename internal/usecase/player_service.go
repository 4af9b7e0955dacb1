package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/domain/team"
	"github.com/bidwire/cricket-auction/internal/infrastructure/imagestore"
	"github.com/bidwire/cricket-auction/internal/platform/id"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
)

// PlayerDetails pairs a player with its buying team when one exists.
type PlayerDetails struct {
	Player player.Player
	Team   *team.Team
}

// PlayerService owns registration, the sale transition, and player removal.
type PlayerService struct {
	eventRepo  event.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	images     imagestore.Store
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(
	eventRepo event.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	images imagestore.Store,
	idGen id.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		images:     images,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type RegisterPlayerParams struct {
	EventID string
	Name    string
	Age     int
	Type    string
	Image   imagestore.Upload
}

// RegisterPlayer runs the registration workflow. The image artifact is
// stored before anything is validated, so every later failure, including an
// insert-time uniqueness race, has to delete the artifact on the way out.
// Precondition order: image, fields, event exists, registration open,
// fingerprint free.
func (s *PlayerService) RegisterPlayer(ctx context.Context, params RegisterPlayerParams) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.RegisterPlayer")
	defer span.End()

	imageRef, err := s.images.Save(ctx, params.Image)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	item, err := s.registerStored(ctx, params, imageRef)
	if err != nil {
		if cleanupErr := s.images.Delete(ctx, imageRef); cleanupErr != nil {
			s.logger.WarnContext(ctx, "registration image cleanup failed", "ref", imageRef, "error", cleanupErr)
		}
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "player registered", "player_id", item.ID, "event_id", item.EventID)
	return item, nil
}

// registerStored is the part of registration that runs after the image
// artifact exists; any error it returns triggers artifact cleanup.
func (s *PlayerService) registerStored(ctx context.Context, params RegisterPlayerParams, imageRef string) (player.Player, error) {
	eventID := strings.TrimSpace(params.EventID)
	if eventID == "" {
		return player.Player{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if params.Age < 1 || params.Age > 100 {
		return player.Player{}, fmt.Errorf("%w: player age must be between 1 and 100", ErrInvalidInput)
	}
	roleType, err := player.ParseRoleType(params.Type)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	eventItem, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	if eventItem.Status != event.StatusRegistration {
		return player.Player{}, fmt.Errorf("%w: registration is closed for event %s", ErrConflict, eventItem.ID)
	}

	fingerprint := player.Fingerprint(name, params.Age, roleType)
	if existing, found, err := s.playerRepo.GetByFingerprint(ctx, eventItem.ID, fingerprint); err != nil {
		return player.Player{}, fmt.Errorf("check fingerprint: %w", err)
	} else if found {
		return player.Player{}, newDuplicatePlayerError(existing)
	}

	playerID, err := s.idGen.NewID("plr")
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:           playerID,
		EventID:      eventItem.ID,
		Name:         name,
		Age:          params.Age,
		Type:         roleType,
		Image:        imageRef,
		RegisteredAt: s.now().UTC(),
		Fingerprint:  fingerprint,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		if errors.Is(err, player.ErrDuplicateFingerprint) {
			// lost the insert race; fetch the winner for the duplicate details
			if existing, found, getErr := s.playerRepo.GetByFingerprint(ctx, eventItem.ID, fingerprint); getErr == nil && found {
				return player.Player{}, newDuplicatePlayerError(existing)
			}
			return player.Player{}, fmt.Errorf("%w: player already registered", ErrConflict)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (PlayerDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetPlayer")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return PlayerDetails{}, err
	}
	return s.withTeam(ctx, item)
}

func (s *PlayerService) ListPlayersByEvent(ctx context.Context, eventID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListPlayersByEvent")
	defer span.End()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

// ListPlayersByType returns the event's unsold players of one role type.
// Sold players drop out of this listing the moment the sale lands.
func (s *PlayerService) ListPlayersByType(ctx context.Context, eventID, roleType string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListPlayersByType")
	defer span.End()

	parsed, err := player.ParseRoleType(roleType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListUnauctioned(ctx, eventID, parsed)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) ListSoldByEvent(ctx context.Context, eventID string) ([]PlayerDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListSoldByEvent")
	defer span.End()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListSoldByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sold players: %w", err)
	}
	return s.withTeams(ctx, items)
}

func (s *PlayerService) ListSoldByTeam(ctx context.Context, eventID, teamID string) ([]PlayerDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListSoldByTeam")
	defer span.End()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListSoldByTeam(ctx, eventID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list sold players by team: %w", err)
	}
	return s.withTeams(ctx, items)
}

type SellPlayerParams struct {
	TeamID    string
	SoldPrice float64
}

// SellPlayer marks the player sold to a team. A price of zero or less is
// treated as "no price recorded". Selling an already-sold player overwrites
// the previous sale.
func (s *PlayerService) SellPlayer(ctx context.Context, playerID string, params SellPlayerParams) (PlayerDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.SellPlayer")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return PlayerDetails{}, err
	}

	teamID := strings.TrimSpace(params.TeamID)
	if teamID == "" {
		return PlayerDetails{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	buyer, err := s.getTeam(ctx, teamID)
	if err != nil {
		return PlayerDetails{}, err
	}

	soldAt := s.now().UTC()
	item.Auctioned = true
	item.AuctionedAt = &soldAt
	item.TeamID = &buyer.ID
	item.SoldPrice = nil
	if params.SoldPrice > 0 {
		price := params.SoldPrice
		item.SoldPrice = &price
	}

	if err := s.playerRepo.Update(ctx, item); err != nil {
		return PlayerDetails{}, fmt.Errorf("update player sale: %w", err)
	}

	s.logger.InfoContext(ctx, "player sold", "player_id", item.ID, "team_id", buyer.ID)
	return PlayerDetails{Player: item, Team: &buyer}, nil
}

// DeletePlayer removes the record and then its image artifact. An artifact
// failure after the row is gone is logged, not surfaced.
func (s *PlayerService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.DeletePlayer")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("%w: delete player: %s", ErrStorage, err)
	}
	if item.Image != "" {
		if err := s.images.Delete(ctx, item.Image); err != nil {
			s.logger.WarnContext(ctx, "image cleanup failed", "ref", item.Image, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", item.ID)
	return nil
}

func (s *PlayerService) withTeams(ctx context.Context, items []player.Player) ([]PlayerDetails, error) {
	teamIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.TeamID == nil {
			continue
		}
		if _, ok := seen[*item.TeamID]; ok {
			continue
		}
		seen[*item.TeamID] = struct{}{}
		teamIDs = append(teamIDs, *item.TeamID)
	}

	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("get teams: %w", err)
	}
	byID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	out := make([]PlayerDetails, 0, len(items))
	for _, item := range items {
		details := PlayerDetails{Player: item}
		if item.TeamID != nil {
			if t, ok := byID[*item.TeamID]; ok {
				buyer := t
				details.Team = &buyer
			}
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *PlayerService) withTeam(ctx context.Context, item player.Player) (PlayerDetails, error) {
	details := PlayerDetails{Player: item}
	if item.TeamID == nil {
		return details, nil
	}

	buyer, exists, err := s.teamRepo.GetByID(ctx, *item.TeamID)
	if err != nil {
		return PlayerDetails{}, fmt.Errorf("get team: %w", err)
	}
	if exists {
		details.Team = &buyer
	}
	return details, nil
}

func (s *PlayerService) getPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) getEvent(ctx context.Context, eventID string) (event.Event, error) {
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

func (s *PlayerService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}
