package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestApiErrorIs(t *testing.T) {
	if !errors.Is(NotFound("video not found"), ErrNotFound) {
		t.Error("custom 404 does not match ErrNotFound")
	}
	if errors.Is(NotFound("video not found"), ErrUnauthorized) {
		t.Error("404 matched ErrUnauthorized")
	}
	if !errors.Is(fmt.Errorf("toggling: %w", ErrSelfSubscription), ErrSelfSubscription) {
		t.Error("wrapped sentinel does not match")
	}
}

func TestMapStorageError(t *testing.T) {
	if !errors.Is(MapStorageError(context.DeadlineExceeded), ErrTimeout) {
		t.Error("deadline exceeded did not map to ErrTimeout")
	}
	if !errors.Is(MapStorageError(context.Canceled), ErrTimeout) {
		t.Error("cancellation did not map to ErrTimeout")
	}
	plain := errors.New("conditional check failed")
	if MapStorageError(plain) != plain {
		t.Error("unrelated error was rewritten")
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"api error", NotFound("tweet not found"), http.StatusNotFound, "tweet not found"},
		{"wrapped api error", fmt.Errorf("handler: %w", ErrUnauthorized), http.StatusUnauthorized, ErrUnauthorized.Message},
		{"unknown error hidden", errors.New("dynamodb: connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body struct {
				StatusCode int      `json:"statusCode"`
				Message    string   `json:"message"`
				Success    bool     `json:"success"`
				Errors     []string `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid envelope: %v", err)
			}
			if body.Success {
				t.Error("failure envelope marked success")
			}
			if body.StatusCode != tc.wantStatus || body.Message != tc.wantMessage {
				t.Errorf("body = %+v, want status %d message %q", body, tc.wantStatus, tc.wantMessage)
			}
			if body.Errors == nil {
				t.Error("errors array omitted")
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusCreated, map[string]string{"id": "v1"}, "video published successfully")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var body ApiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if !body.Success || body.StatusCode != http.StatusCreated || body.Message != "video published successfully" {
		t.Fatalf("body = %+v", body)
	}
}
