package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
)

// AuctionService serves the live-session read side: shuffled pools, grouped
// pools, the next random draw, and the progress stats. Draws are advisory;
// nothing is reserved until the sale endpoint is called.
type AuctionService struct {
	eventRepo  event.Repository
	playerRepo player.Repository
}

func NewAuctionService(eventRepo event.Repository, playerRepo player.Repository) *AuctionService {
	return &AuctionService{eventRepo: eventRepo, playerRepo: playerRepo}
}

// ShuffledByType returns the unsold players of one role type in a uniform
// random order. Every call reshuffles.
func (s *AuctionService) ShuffledByType(ctx context.Context, eventID, roleType string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AuctionService.ShuffledByType")
	defer span.End()

	parsed, err := player.ParseRoleType(roleType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListUnauctioned(ctx, eventID, parsed)
	if err != nil {
		return nil, fmt.Errorf("list unauctioned players: %w", err)
	}

	shufflePlayers(items)
	return items, nil
}

// GroupedPlayers partitions the unsold pool into the four role buckets, each
// independently shuffled. Players with an unrecognized type are dropped.
func (s *AuctionService) GroupedPlayers(ctx context.Context, eventID string) (map[player.RoleType][]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AuctionService.GroupedPlayers")
	defer span.End()

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListUnauctioned(ctx, eventID, "")
	if err != nil {
		return nil, fmt.Errorf("list unauctioned players: %w", err)
	}

	groups := make(map[player.RoleType][]player.Player, len(player.RoleTypes()))
	for _, roleType := range player.RoleTypes() {
		groups[roleType] = []player.Player{}
	}
	for _, item := range items {
		bucket, ok := groups[item.Type]
		if !ok {
			continue
		}
		groups[item.Type] = append(bucket, item)
	}
	for roleType := range groups {
		shufflePlayers(groups[roleType])
	}
	return groups, nil
}

// NextPlayer draws one uniform random unsold player, optionally restricted
// to a role type. An empty pool reports ok=false, not an error, and the same
// player can come up again on a later draw.
func (s *AuctionService) NextPlayer(ctx context.Context, eventID, roleType string) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "AuctionService.NextPlayer")
	defer span.End()

	var parsed player.RoleType
	if strings.TrimSpace(roleType) != "" {
		var err error
		if parsed, err = player.ParseRoleType(roleType); err != nil {
			return player.Player{}, false, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
	}
	if err := s.requireEvent(ctx, eventID); err != nil {
		return player.Player{}, false, err
	}

	items, err := s.playerRepo.ListUnauctioned(ctx, eventID, parsed)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("list unauctioned players: %w", err)
	}
	if len(items) == 0 {
		return player.Player{}, false, nil
	}

	return items[rand.IntN(len(items))], true, nil
}

// AuctionStats is the progress snapshot for one event. ByType counts every
// registered player regardless of sale state; ByTypeAuctioned counts only
// sold ones.
type AuctionStats struct {
	Total           int
	Auctioned       int
	Remaining       int
	ByType          player.TypeCounts
	ByTypeAuctioned player.TypeCounts
}

// Stats fans the four count queries out concurrently.
func (s *AuctionService) Stats(ctx context.Context, eventID string) (AuctionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "AuctionService.Stats")
	defer span.End()

	if err := s.requireEvent(ctx, eventID); err != nil {
		return AuctionStats{}, err
	}

	var stats AuctionStats
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		total, err := s.playerRepo.CountByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count players: %w", err)
		}
		stats.Total = total
		return nil
	})
	p.Go(func(ctx context.Context) error {
		auctioned, err := s.playerRepo.CountAuctionedByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count auctioned players: %w", err)
		}
		stats.Auctioned = auctioned
		return nil
	})
	p.Go(func(ctx context.Context) error {
		byType, err := s.playerRepo.CountByType(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count players by type: %w", err)
		}
		stats.ByType = byType
		return nil
	})
	p.Go(func(ctx context.Context) error {
		byTypeAuctioned, err := s.playerRepo.CountAuctionedByType(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count auctioned players by type: %w", err)
		}
		stats.ByTypeAuctioned = byTypeAuctioned
		return nil
	})
	if err := p.Wait(); err != nil {
		return AuctionStats{}, err
	}

	stats.Remaining = stats.Total - stats.Auctioned
	return stats, nil
}

func (s *AuctionService) requireEvent(ctx context.Context, eventID string) error {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	return nil
}

// shufflePlayers applies a uniform Fisher-Yates permutation in place.
func shufflePlayers(items []player.Player) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
