package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/domain/team"
	"github.com/bidwire/cricket-auction/internal/platform/id"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
)

// TeamService owns the bidding sides. Teams live across events, so deletion
// is blocked while any sold player still references the team.
type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateTeamParams struct {
	Name  string
	Color string
}

func (s *TeamService) CreateTeam(ctx context.Context, params CreateTeamParams) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	color := strings.TrimSpace(params.Color)
	if color == "" {
		color = team.DefaultColor
	}

	teamID, err := s.idGen.NewID("team")
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:        teamID,
		Name:      name,
		Color:     color,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			return team.Team{}, fmt.Errorf("%w: team name %q is taken", ErrConflict, name)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID)
	return item, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	return s.getTeam(ctx, teamID)
}

type UpdateTeamParams struct {
	Name  *string
	Color *string
}

func (s *TeamService) UpdateTeam(ctx context.Context, teamID string, params UpdateTeamParams) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.UpdateTeam")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return team.Team{}, fmt.Errorf("%w: team name cannot be empty", ErrInvalidInput)
		}
		item.Name = name
	}
	if params.Color != nil {
		color := strings.TrimSpace(*params.Color)
		if color == "" {
			color = team.DefaultColor
		}
		item.Color = color
	}

	if err := s.teamRepo.Update(ctx, item); err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			return team.Team{}, fmt.Errorf("%w: team name %q is taken", ErrConflict, item.Name)
		}
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	return item, nil
}

// DeleteTeam refuses while sold players still point at the team, naming the
// count so the caller knows how much would dangle.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "TeamService.DeleteTeam")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}

	referencing, err := s.playerRepo.CountByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count players by team: %w", err)
	}
	if referencing > 0 {
		return fmt.Errorf("%w: team %s still holds %d sold players", ErrConflict, item.ID, referencing)
	}

	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", item.ID)
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
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
