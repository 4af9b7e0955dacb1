package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/domain/team"
	"github.com/bidwire/cricket-auction/internal/infrastructure/imagestore"
	"github.com/bidwire/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/bidwire/cricket-auction/internal/platform/id"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
)

// fakeImageStore records saves and deletes so tests can assert artifact
// cleanup without touching a filesystem.
type fakeImageStore struct {
	mu      sync.Mutex
	saved   int
	deleted []string
}

func (f *fakeImageStore) Save(ctx context.Context, up imagestore.Upload) (string, error) {
	if up.Body == nil || strings.TrimSpace(up.Filename) == "" {
		return "", imagestore.ErrMissingImage
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved++
	return fmt.Sprintf("/uploads/test-%d.jpg", f.saved), nil
}

func (f *fakeImageStore) Delete(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeImageStore) deletedRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type fixture struct {
	eventRepo  *memory.EventRepository
	playerRepo *memory.PlayerRepository
	teamRepo   *memory.TeamRepository
	images     *fakeImageStore

	events   *EventService
	players  *PlayerService
	teams    *TeamService
	auctions *AuctionService
}

func newFixture() *fixture {
	f := &fixture{
		eventRepo:  memory.NewEventRepository(),
		playerRepo: memory.NewPlayerRepository(),
		teamRepo:   memory.NewTeamRepository(),
		images:     &fakeImageStore{},
	}

	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()
	f.events = NewEventService(f.eventRepo, f.playerRepo, f.images, idGen, nil, logger)
	f.players = NewPlayerService(f.eventRepo, f.playerRepo, f.teamRepo, f.images, idGen, logger)
	f.teams = NewTeamService(f.teamRepo, f.playerRepo, idGen, logger)
	f.auctions = NewAuctionService(f.eventRepo, f.playerRepo)
	return f
}

func (f *fixture) seedEvent(status event.Status) event.Event {
	item := event.Event{
		ID:            fmt.Sprintf("evt_%d", time.Now().UnixNano()),
		Name:          "Summer Cup",
		ShareableLink: fmt.Sprintf("link_%d", time.Now().UnixNano()),
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
	if err := f.eventRepo.Create(context.Background(), item); err != nil {
		panic(err)
	}
	return item
}

func (f *fixture) seedTeam(name string) team.Team {
	item := team.Team{
		ID:        fmt.Sprintf("team_%d_%s", time.Now().UnixNano(), name),
		Name:      name,
		Color:     team.DefaultColor,
		CreatedAt: time.Now().UTC(),
	}
	if err := f.teamRepo.Create(context.Background(), item); err != nil {
		panic(err)
	}
	return item
}

func (f *fixture) register(eventID, name string, age int, roleType player.RoleType) (player.Player, error) {
	return f.players.RegisterPlayer(context.Background(), RegisterPlayerParams{
		EventID: eventID,
		Name:    name,
		Age:     age,
		Type:    string(roleType),
		Image:   testUpload(),
	})
}

// racingPlayerRepo sneaks a rival row in between the workflow's fingerprint
// pre-check and the insert, so the storage uniqueness constraint decides.
type racingPlayerRepo struct {
	*memory.PlayerRepository
	rivalID string
	once    sync.Once
}

func (r *racingPlayerRepo) Create(ctx context.Context, item player.Player) error {
	r.once.Do(func() {
		rival := item
		rival.ID = r.rivalID
		rival.Image = "/uploads/rival.jpg"
		if err := r.PlayerRepository.Create(ctx, rival); err != nil {
			panic(err)
		}
	})
	return r.PlayerRepository.Create(ctx, item)
}

func (f *fixture) playersWith(repo player.Repository) *PlayerService {
	return NewPlayerService(f.eventRepo, repo, f.teamRepo, f.images, id.NewRandomGenerator(), logging.NewNop())
}

func testUpload() imagestore.Upload {
	return imagestore.Upload{
		Filename:    "portrait.jpg",
		ContentType: "image/jpeg",
		Size:        4,
		Body:        strings.NewReader("data"),
	}
}
