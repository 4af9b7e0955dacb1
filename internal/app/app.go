package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"

	"github.com/bidwire/cricket-auction/internal/config"
	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/domain/team"
	"github.com/bidwire/cricket-auction/internal/infrastructure/imagestore"
	"github.com/bidwire/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/bidwire/cricket-auction/internal/infrastructure/repository/postgres"
	"github.com/bidwire/cricket-auction/internal/interfaces/httpapi"
	idgen "github.com/bidwire/cricket-auction/internal/platform/id"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
	"github.com/bidwire/cricket-auction/internal/usecase"
)

// App bundles the HTTP server with the resources it owns. Close releases
// them in reverse order of construction.
type App struct {
	Server *http.Server

	db      *sqlx.DB
	cleanup *ants.Pool
	logger  *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	eventRepo, playerRepo, teamRepo, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	idGen := idgen.NewRandomGenerator()

	images, uploadsDir, err := buildImageStore(cfg, idGen)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	cleanup, err := ants.NewPool(cfg.CleanupWorkers)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("create cleanup pool: %w", err)
	}

	eventSvc := usecase.NewEventService(eventRepo, playerRepo, images, idGen, cleanup, logger)
	playerSvc := usecase.NewPlayerService(eventRepo, playerRepo, teamRepo, images, idGen, logger)
	teamSvc := usecase.NewTeamService(teamRepo, playerRepo, idGen, logger)
	auctionSvc := usecase.NewAuctionService(eventRepo, playerRepo)

	handler := httpapi.NewHandler(eventSvc, playerSvc, teamSvc, auctionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, uploadsDir)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		cleanup.Release()
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:  server,
		db:      db,
		cleanup: cleanup,
		logger:  logger,
	}, nil
}

// Close shuts down the HTTP server, then drains the cleanup pool and closes
// the database handle.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown http server: %w", err)
	}

	if a.cleanup != nil {
		a.cleanup.Release()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}

	return firstErr
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (event.Repository, player.Repository, team.Repository, *sqlx.DB, error) {
	if cfg.InMemory() {
		logger.Info("storage configured", "backend", "memory")
		return memory.NewEventRepository(), memory.NewPlayerRepository(), memory.NewTeamRepository(), nil, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger.Info("storage configured", "backend", "postgres", "database", dbNameFromURL(cfg.DBURL))
	return postgres.NewEventRepository(db), postgres.NewPlayerRepository(db), postgres.NewTeamRepository(db), db, nil
}

// buildImageStore returns the configured store plus the directory the HTTP
// layer should serve under /uploads/, empty when nothing is on disk.
func buildImageStore(cfg config.Config, idGen idgen.Generator) (imagestore.Store, string, error) {
	switch cfg.ImageStore {
	case config.ImageStoreInline:
		return imagestore.NewInlineStore(cfg.UploadMaxBytes), "", nil
	case config.ImageStoreDisk:
		store, err := imagestore.NewDiskStore(cfg.UploadDir, cfg.UploadMaxBytes, idGen)
		if err != nil {
			return nil, "", fmt.Errorf("create disk image store: %w", err)
		}
		return store, store.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unknown image store backend %q", cfg.ImageStore)
	}
}
