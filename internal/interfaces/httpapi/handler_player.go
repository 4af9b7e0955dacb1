package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bidwire/cricket-auction/internal/infrastructure/imagestore"
	"github.com/bidwire/cricket-auction/internal/usecase"
)

// multipartMemoryLimit bounds how much of the form is buffered in memory;
// larger file parts spill to temp files.
const multipartMemoryLimit = 8 << 20

type sellPlayerRequest struct {
	TeamID    string  `json:"teamId" validate:"required"`
	SoldPrice float64 `json:"soldPrice" validate:"gte=0"`
}

// RegisterPlayer accepts the multipart registration form:
// eventId, name, age, type, and an image file part.
func (h *Handler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterPlayer")
	defer span.End()

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err))
		return
	}

	age := 0
	if raw := strings.TrimSpace(r.FormValue("age")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: age must be a number", usecase.ErrInvalidInput))
			return
		}
		age = parsed
	}

	upload := imagestore.Upload{}
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		upload = imagestore.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	item, err := h.playerService.RegisterPlayer(ctx, usecase.RegisterPlayerParams{
		EventID: r.FormValue("eventId"),
		Name:    r.FormValue("name"),
		Age:     age,
		Type:    r.FormValue("type"),
		Image:   upload,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register player failed", "event_id", r.FormValue("eventId"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	details, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailsToDTO(details))
}

func (h *Handler) ListPlayersByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.playerService.ListPlayersByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayersByType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByType")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.playerService.ListPlayersByType(ctx, eventID, r.PathValue("type"))
	if err != nil {
		h.logger.WarnContext(ctx, "list players by type failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSoldPlayersByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSoldPlayersByEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.playerService.ListSoldByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list sold players failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerDetailsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSoldPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSoldPlayersByTeam")
	defer span.End()

	eventID := r.PathValue("eventID")
	teamID := r.PathValue("teamID")
	items, err := h.playerService.ListSoldByTeam(ctx, eventID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list sold players by team failed", "event_id", eventID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerDetailsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	var req sellPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	details, err := h.playerService.SellPlayer(ctx, playerID, usecase.SellPlayerParams{
		TeamID:    req.TeamID,
		SoldPrice: req.SoldPrice,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "sell player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailsToDTO(details))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.playerService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"message": "player deleted"})
}
