package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/bidwire/cricket-auction/internal/infrastructure/imagestore"
	"github.com/bidwire/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/bidwire/cricket-auction/internal/platform/id"
	"github.com/bidwire/cricket-auction/internal/platform/logging"
	"github.com/bidwire/cricket-auction/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	eventRepo := memory.NewEventRepository()
	playerRepo := memory.NewPlayerRepository()
	teamRepo := memory.NewTeamRepository()
	images := imagestore.NewInlineStore(0)
	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewEventService(eventRepo, playerRepo, images, idGen, nil, logger),
		usecase.NewPlayerService(eventRepo, playerRepo, teamRepo, images, idGen, logger),
		usecase.NewTeamService(teamRepo, playerRepo, idGen, logger),
		usecase.NewAuctionService(eventRepo, playerRepo),
		logger,
	)

	server := httptest.NewServer(NewRouter(handler, logger, []string{"*"}, ""))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, payload
}

func registerPlayerRequest(t *testing.T, url, eventID, name, age, roleType string) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for key, value := range map[string]string{
		"eventId": eventID,
		"name":    name,
		"age":     age,
		"type":    roleType,
	} {
		if err := form.WriteField(key, value); err != nil {
			t.Fatalf("write form field: %v", err)
		}
	}
	part, err := form.CreateFormFile("image", "portrait.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("image-bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url+"/players", &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("register player: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, payload
}

func decodeData(t *testing.T, payload []byte, out any) {
	t.Helper()

	var envelope struct {
		Data jsoniter.RawMessage `json:"data"`
	}
	if err := jsoniter.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, payload)
	}
	if err := jsoniter.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v\n%s", err, envelope.Data)
	}
}

func TestAuctionLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)

	// open an event
	resp, payload := doJSON(t, http.MethodPost, server.URL+"/events", `{"name":"Summer Cup","description":"annual"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d\n%s", resp.StatusCode, payload)
	}
	var evt eventDTO
	decodeData(t, payload, &evt)
	if evt.Status != "registration" || evt.ShareableLink == "" {
		t.Fatalf("unexpected created event: %+v", evt)
	}

	// the shareable link resolves the event
	resp, payload = doJSON(t, http.MethodGet, server.URL+"/events/link/"+evt.ShareableLink, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get by link: expected 200, got %d\n%s", resp.StatusCode, payload)
	}

	// register two players
	resp, payload = registerPlayerRequest(t, server.URL, evt.ID, "Alice", "25", "Batsman")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d\n%s", resp.StatusCode, payload)
	}
	var alice playerDTO
	decodeData(t, payload, &alice)

	resp, payload = registerPlayerRequest(t, server.URL, evt.ID, "Bob", "30", "Bowler")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d\n%s", resp.StatusCode, payload)
	}

	// duplicate registration is rejected with duplicateInfo
	resp, payload = registerPlayerRequest(t, server.URL, evt.ID, " ALICE ", "25", "Batsman")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d\n%s", resp.StatusCode, payload)
	}
	var dupEnvelope googleResponseEnvelope
	if err := jsoniter.Unmarshal(payload, &dupEnvelope); err != nil {
		t.Fatalf("decode duplicate envelope: %v", err)
	}
	if dupEnvelope.Error == nil || dupEnvelope.Error.DuplicateInfo == nil {
		t.Fatalf("expected duplicateInfo, got %s", payload)
	}
	if dupEnvelope.Error.DuplicateInfo.Name != "Alice" {
		t.Fatalf("unexpected duplicateInfo: %+v", dupEnvelope.Error.DuplicateInfo)
	}

	// create a team and move the event to auction
	resp, payload = doJSON(t, http.MethodPost, server.URL+"/teams", `{"name":"Strikers"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create team: expected 201, got %d\n%s", resp.StatusCode, payload)
	}
	var strikers teamDTO
	decodeData(t, payload, &strikers)
	if strikers.Color != "#667eea" {
		t.Fatalf("expected default color, got %s", strikers.Color)
	}

	resp, payload = doJSON(t, http.MethodPatch, server.URL+"/events/"+evt.ID+"/status", `{"status":"auction"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status change: expected 200, got %d\n%s", resp.StatusCode, payload)
	}
	var started eventDTO
	decodeData(t, payload, &started)
	if started.Status != "auction" || started.AuctionStartedAt == "" {
		t.Fatalf("expected auction start stamp, got %+v", started)
	}

	// registration is closed during the auction
	resp, payload = registerPlayerRequest(t, server.URL, evt.ID, "Carol", "28", "Bowler")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("closed registration: expected 409, got %d\n%s", resp.StatusCode, payload)
	}

	// draw and sell
	resp, payload = doJSON(t, http.MethodGet, server.URL+"/auction/event/"+evt.ID+"/next?type=Batsman", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next: expected 200, got %d\n%s", resp.StatusCode, payload)
	}
	var draw nextPlayerDTO
	decodeData(t, payload, &draw)
	if draw.Player == nil || draw.Player.ID != alice.ID {
		t.Fatalf("expected Alice drawn, got %+v", draw)
	}

	body := fmt.Sprintf(`{"teamId":%q,"soldPrice":1500}`, strikers.ID)
	resp, payload = doJSON(t, http.MethodPatch, server.URL+"/players/"+alice.ID+"/auctioned", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sell: expected 200, got %d\n%s", resp.StatusCode, payload)
	}
	var sold playerDTO
	decodeData(t, payload, &sold)
	if !sold.Auctioned || sold.TeamID != strikers.ID || sold.TeamName != "Strikers" {
		t.Fatalf("unexpected sold player: %+v", sold)
	}
	if sold.SoldPrice == nil || *sold.SoldPrice != 1500 {
		t.Fatalf("expected sold price 1500, got %v", sold.SoldPrice)
	}

	// stats reflect the sale
	resp, payload = doJSON(t, http.MethodGet, server.URL+"/auction/event/"+evt.ID+"/stats", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d\n%s", resp.StatusCode, payload)
	}
	var stats auctionStatsDTO
	decodeData(t, payload, &stats)
	if stats.Total != 2 || stats.Auctioned != 1 || stats.Remaining != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ByType["Batsman"] != 1 || stats.ByTypeAuctioned["Batsman"] != 1 {
		t.Fatalf("unexpected type buckets: %+v", stats)
	}

	// team deletion is blocked while Alice references it
	resp, payload = doJSON(t, http.MethodDelete, server.URL+"/teams/"+strikers.ID, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("team delete: expected 409, got %d\n%s", resp.StatusCode, payload)
	}

	// cascade delete removes the event and its players
	resp, payload = doJSON(t, http.MethodDelete, server.URL+"/events/"+evt.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("event delete: expected 200, got %d\n%s", resp.StatusCode, payload)
	}
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/players/"+alice.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected player gone after cascade, got %d", resp.StatusCode)
	}

	// with no references left the team can be removed
	resp, payload = doJSON(t, http.MethodDelete, server.URL+"/teams/"+strikers.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("team delete after cascade: expected 200, got %d\n%s", resp.StatusCode, payload)
	}
}

func TestGroupedPlayersEndpoint(t *testing.T) {
	server := newTestServer(t)

	_, payload := doJSON(t, http.MethodPost, server.URL+"/events", `{"name":"Winter Cup"}`)
	var evt eventDTO
	decodeData(t, payload, &evt)

	for _, p := range []struct{ name, age, role string }{
		{"Alice", "25", "Batsman"},
		{"Bob", "26", "Batsman"},
		{"Carol", "27", "Bowling Allrounder"},
	} {
		resp, body := registerPlayerRequest(t, server.URL, evt.ID, p.name, p.age, p.role)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d\n%s", p.name, resp.StatusCode, body)
		}
	}

	resp, payload := doJSON(t, http.MethodGet, server.URL+"/auction/event/"+evt.ID+"/players", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("grouped: expected 200, got %d\n%s", resp.StatusCode, payload)
	}

	var groups map[string][]playerDTO
	decodeData(t, payload, &groups)
	if len(groups) != 4 {
		t.Fatalf("expected the four fixed buckets, got %d", len(groups))
	}
	if len(groups["Batsman"]) != 2 || len(groups["Bowling Allrounder"]) != 1 || len(groups["Bowler"]) != 0 {
		t.Fatalf("unexpected bucket sizes: %+v", groups)
	}
}

func TestValidationAndRoutingErrors(t *testing.T) {
	server := newTestServer(t)

	// unknown JSON fields are rejected
	resp, payload := doJSON(t, http.MethodPost, server.URL+"/events", `{"name":"x","bogus":true}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown field: expected 400, got %d\n%s", resp.StatusCode, payload)
	}

	// missing required fields are rejected
	resp, payload = doJSON(t, http.MethodPost, server.URL+"/teams", `{"color":"#123456"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d\n%s", resp.StatusCode, payload)
	}

	// unknown resources are 404s
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/events/evt_missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown event: expected 404, got %d", resp.StatusCode)
	}

	// unknown auction type is a 400
	_, payload = doJSON(t, http.MethodPost, server.URL+"/events", `{"name":"Cup"}`)
	var evt eventDTO
	decodeData(t, payload, &evt)
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/auction/event/"+evt.ID+"/type/Wicketkeeper", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown type: expected 400, got %d", resp.StatusCode)
	}

	// healthz responds without tracing
	resp, _ = doJSON(t, http.MethodGet, server.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", resp.StatusCode)
	}
}
