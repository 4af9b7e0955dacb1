package httpapi

import (
	"net/http"

	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/usecase"
)

type auctionStatsDTO struct {
	Total           int            `json:"total"`
	Auctioned       int            `json:"auctioned"`
	Remaining       int            `json:"remaining"`
	ByType          map[string]int `json:"byType"`
	ByTypeAuctioned map[string]int `json:"byTypeAuctioned"`
}

type nextPlayerDTO struct {
	Player  *playerDTO `json:"player"`
	Message string     `json:"message,omitempty"`
}

// AuctionPlayersByType returns the unsold players of one role type in a
// fresh random order.
func (h *Handler) AuctionPlayersByType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuctionPlayersByType")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.auctionService.ShuffledByType(ctx, eventID, r.PathValue("type"))
	if err != nil {
		h.logger.WarnContext(ctx, "auction players by type failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// AuctionGroupedPlayers returns the unsold pool bucketed by role type, each
// bucket shuffled.
func (h *Handler) AuctionGroupedPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuctionGroupedPlayers")
	defer span.End()

	eventID := r.PathValue("eventID")
	groups, err := h.auctionService.GroupedPlayers(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "auction grouped players failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make(map[string][]playerDTO, len(groups))
	for roleType, bucket := range groups {
		items := make([]playerDTO, 0, len(bucket))
		for _, item := range bucket {
			items = append(items, playerToDTO(item))
		}
		out[string(roleType)] = items
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// AuctionNextPlayer draws one random unsold player. The optional ?type=
// query restricts the pool. An exhausted pool is a normal response, not an
// error.
func (h *Handler) AuctionNextPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuctionNextPlayer")
	defer span.End()

	eventID := r.PathValue("eventID")
	item, ok, err := h.auctionService.NextPlayer(ctx, eventID, r.URL.Query().Get("type"))
	if err != nil {
		h.logger.WarnContext(ctx, "auction next player failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, nextPlayerDTO{Message: "no players available"})
		return
	}

	dto := playerToDTO(item)
	writeSuccess(ctx, w, http.StatusOK, nextPlayerDTO{Player: &dto})
}

func (h *Handler) AuctionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuctionStats")
	defer span.End()

	eventID := r.PathValue("eventID")
	stats, err := h.auctionService.Stats(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "auction stats failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionStatsToDTO(stats))
}

// auctionStatsToDTO keys every bucket by the four fixed role types so
// clients always see a complete map.
func auctionStatsToDTO(stats usecase.AuctionStats) auctionStatsDTO {
	out := auctionStatsDTO{
		Total:           stats.Total,
		Auctioned:       stats.Auctioned,
		Remaining:       stats.Remaining,
		ByType:          make(map[string]int, len(player.RoleTypes())),
		ByTypeAuctioned: make(map[string]int, len(player.RoleTypes())),
	}
	for _, roleType := range player.RoleTypes() {
		out.ByType[string(roleType)] = stats.ByType[roleType]
		out.ByTypeAuctioned[string(roleType)] = stats.ByTypeAuctioned[roleType]
	}
	return out
}
