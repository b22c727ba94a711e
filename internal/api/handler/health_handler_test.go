package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodGet, "/health", "")

	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		checks map[string]Check
		want   int
	}{
		{"all up", map[string]Check{"mongodb": ok, "redis": ok}, http.StatusOK},
		{"redis down", map[string]Check{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		e := newTestEcho()
		c, rec := jsonRequest(e, http.MethodGet, "/health/ready", "")

		if err := NewHealthHandler(tc.checks).Readiness(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}

		var resp readinessResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: invalid json: %v", tc.name, err)
		}
		if len(resp.Dependencies) != len(tc.checks) {
			t.Fatalf("%s: expected %d dependencies, got %+v", tc.name, len(tc.checks), resp.Dependencies)
		}
	}
}
