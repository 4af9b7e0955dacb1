package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/bidwire/cricket-auction/internal/domain/player"
	"github.com/bidwire/cricket-auction/internal/usecase"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", fmt.Errorf("%w: bad", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"not found", fmt.Errorf("%w: gone", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", fmt.Errorf("%w: taken", usecase.ErrConflict), http.StatusConflict, "ALREADY_EXISTS"},
		{"storage", fmt.Errorf("%w: boom", usecase.ErrStorage), http.StatusInternalServerError, "INTERNAL"},
		{"duplicate player", &usecase.DuplicatePlayerError{Name: "Alice"}, http.StatusConflict, "ALREADY_EXISTS"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		mapped := mapError(context.Background(), tc.err)
		if mapped.HTTPStatus != tc.wantStatus {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.wantStatus, mapped.HTTPStatus)
		}
		if mapped.Status != tc.wantCode {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.wantCode, mapped.Status)
		}
	}
}

func TestWriteError_DuplicateCarriesDuplicateInfo(t *testing.T) {
	registeredAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	err := &usecase.DuplicatePlayerError{
		Name:         "Alice",
		Age:          25,
		Type:         player.RoleBatsman,
		RegisteredAt: registeredAt,
	}

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, err)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var envelope googleResponseEnvelope
	if err := jsoniter.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error == nil || envelope.Error.DuplicateInfo == nil {
		t.Fatalf("expected duplicateInfo in error body, got %+v", envelope.Error)
	}

	info := envelope.Error.DuplicateInfo
	if info.Name != "Alice" || info.Age != 25 || info.Type != "Batsman" {
		t.Fatalf("unexpected duplicateInfo: %+v", info)
	}
	if info.RegisteredAt != registeredAt.Format(time.RFC3339) {
		t.Fatalf("unexpected registeredAt: %s", info.RegisteredAt)
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
	}
	if err := jsoniter.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion %s, got %s", googleAPIVersion, envelope.APIVersion)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("unexpected data: %+v", envelope.Data)
	}
}
