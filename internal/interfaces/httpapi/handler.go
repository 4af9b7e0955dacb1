package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/bidwire/cricket-auction/internal/domain/event"
	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/domain/team"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
	"github.com/bidwire/cricket-auction/internal/usecase"
)

type Handler struct {
	eventService   *usecase.EventService
	playerService  *usecase.PlayerService
	teamService    *usecase.TeamService
	auctionService *usecase.AuctionService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	eventService *usecase.EventService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	auctionService *usecase.AuctionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		eventService:   eventService,
		playerService:  playerService,
		teamService:    teamService,
		auctionService: auctionService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, out any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type eventDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ShareableLink    string `json:"shareableLink"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
	AuctionStartedAt string `json:"auctionStartedAt,omitempty"`
}

type playerDTO struct {
	ID           string   `json:"id"`
	EventID      string   `json:"eventId"`
	Name         string   `json:"name"`
	Age          int      `json:"age"`
	Type         string   `json:"type"`
	Image        string   `json:"image"`
	RegisteredAt string   `json:"registeredAt"`
	Auctioned    bool     `json:"auctioned"`
	AuctionedAt  string   `json:"auctionedAt,omitempty"`
	TeamID       string   `json:"teamId,omitempty"`
	SoldPrice    *float64 `json:"soldPrice,omitempty"`
	TeamName     string   `json:"teamName,omitempty"`
	TeamColor    string   `json:"teamColor,omitempty"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
}

func eventToDTO(v event.Event) eventDTO {
	out := eventDTO{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		ShareableLink: v.ShareableLink,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.AuctionStartedAt != nil {
		out.AuctionStartedAt = v.AuctionStartedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func playerToDTO(v player.Player) playerDTO {
	out := playerDTO{
		ID:           v.ID,
		EventID:      v.EventID,
		Name:         v.Name,
		Age:          v.Age,
		Type:         string(v.Type),
		Image:        v.Image,
		RegisteredAt: v.RegisteredAt.UTC().Format(time.RFC3339),
		Auctioned:    v.Auctioned,
		SoldPrice:    v.SoldPrice,
	}
	if v.AuctionedAt != nil {
		out.AuctionedAt = v.AuctionedAt.UTC().Format(time.RFC3339)
	}
	if v.TeamID != nil {
		out.TeamID = *v.TeamID
	}
	return out
}

func playerDetailsToDTO(v usecase.PlayerDetails) playerDTO {
	out := playerToDTO(v.Player)
	if v.Team != nil {
		out.TeamName = v.Team.Name
		out.TeamColor = v.Team.Color
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		Color:     v.Color,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
