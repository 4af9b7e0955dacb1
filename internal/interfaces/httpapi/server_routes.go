package httpapi

import (
	"net/http"
	"strings"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerEventRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /events", handler.CreateEvent)
	mux.HandleFunc("GET /events", handler.ListEvents)
	mux.HandleFunc("GET /events/link/{link}", handler.GetEventByLink)
	mux.HandleFunc("GET /events/{eventID}", handler.GetEvent)
	mux.HandleFunc("PUT /events/{eventID}", handler.UpdateEvent)
	mux.HandleFunc("PATCH /events/{eventID}/status", handler.UpdateEventStatus)
	mux.HandleFunc("DELETE /events/{eventID}", handler.DeleteEvent)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /players", handler.RegisterPlayer)
	mux.HandleFunc("GET /players/event/{eventID}", handler.ListPlayersByEvent)
	mux.HandleFunc("GET /players/event/{eventID}/sold", handler.ListSoldPlayersByEvent)
	mux.HandleFunc("GET /players/event/{eventID}/team/{teamID}", handler.ListSoldPlayersByTeam)
	mux.HandleFunc("GET /players/event/{eventID}/type/{type}", handler.ListPlayersByType)
	mux.HandleFunc("GET /players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PATCH /players/{playerID}/auctioned", handler.SellPlayer)
	mux.HandleFunc("DELETE /players/{playerID}", handler.DeletePlayer)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /teams", handler.CreateTeam)
	mux.HandleFunc("GET /teams", handler.ListTeams)
	mux.HandleFunc("GET /teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /teams/{teamID}", handler.DeleteTeam)
}

func registerAuctionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /auction/event/{eventID}/type/{type}", handler.AuctionPlayersByType)
	mux.HandleFunc("GET /auction/event/{eventID}/players", handler.AuctionGroupedPlayers)
	mux.HandleFunc("GET /auction/event/{eventID}/next", handler.AuctionNextPlayer)
	mux.HandleFunc("GET /auction/event/{eventID}/stats", handler.AuctionStats)
}

// registerUploadRoutes serves stored player photos when the disk image
// store is active. The inline store embeds images in the record, so no
// directory is configured and the route is skipped.
func registerUploadRoutes(mux *http.ServeMux, uploadsDir string) {
	if strings.TrimSpace(uploadsDir) == "" {
		return
	}
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
}
