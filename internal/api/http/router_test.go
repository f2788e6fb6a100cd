package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nsight-itsm/assistant/internal/api/http/handlers"
	"github.com/nsight-itsm/assistant/internal/auth"
	"github.com/nsight-itsm/assistant/internal/config"
	"github.com/nsight-itsm/assistant/internal/events"
	"github.com/nsight-itsm/assistant/internal/observability"
	"github.com/nsight-itsm/assistant/internal/remote"
	"github.com/nsight-itsm/assistant/internal/service"
	"github.com/nsight-itsm/assistant/internal/session"
)

type stubInvoker struct {
	responses map[string]map[string]any
}

func (s *stubInvoker) Invoke(_ context.Context, function string, _ any) (map[string]any, error) {
	return s.responses[function], nil
}

func newTestApp(t *testing.T, invoker remote.Invoker) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	remoteCfg := config.RemoteConfig{
		ClassifyFn:        "classify",
		CreateFn:          "create",
		UserTicketsFn:     "user_tickets",
		TicketByIDFn:      "ticket_by_id",
		AllTicketsFn:      "all_tickets",
		ResolvedTicketsFn: "resolved_tickets",
		LatestTicketFn:    "latest_ticket",
		AttachmentsFn:     "attachments",
		SearchSimilarFn:   "search_similar",
		UpdateStatusFn:    "update_status",
		SuggestionFn:      "suggestion",
		SummaryFn:         "summary",
	}

	authenticator, err := auth.NewAuthenticator(config.AuthConfig{
		BcryptCost:         4,
		AdminEmail:         "admin@nsight.com",
		AdminPassword:      "admin-pass",
		UserPassword:       "user-pass",
		AllowedEmailDomain: "nsight.com",
	})
	if err != nil {
		t.Fatalf("authenticator: %v", err)
	}
	tokens := auth.NewTokenManager("test-secret", 60)

	svc := service.NewTicketService(service.Dependencies{
		Client:     remote.NewClient(invoker, remoteCfg),
		Sessions:   session.NewMemoryStore(time.Hour),
		Dispatcher: events.NewInMemoryDispatcher(logger),
		Logger:     logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil),
		Auth:           handlers.NewAuthHandler(authenticator, tokens),
		Tickets:        handlers.NewTicketsHandler(svc),
		Admin:          handlers.NewAdminHandler(svc),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("login status = %d, body %s", resp.StatusCode, raw)
	}

	var payload struct {
		Data struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if payload.Data.Token == "" {
		t.Fatal("login returned empty token")
	}
	return payload.Data.Token
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubInvoker{responses: map[string]map[string]any{}})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubInvoker{responses: map[string]map[string]any{}})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tickets/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminRoutesForbiddenForUsers(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubInvoker{responses: map[string]map[string]any{}})
	token := login(t, app, "alice@nsight.com", "user-pass")

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestUserTicketFlow(t *testing.T) {
	t.Parallel()

	invoker := &stubInvoker{responses: map[string]map[string]any{
		"classify": {"body": map[string]any{"category": "technical"}},
		"search_similar": {"body": map[string]any{
			"similar_tickets": []any{map[string]any{"ticket_id": "T-9", "similarity": 0.7}},
		}},
		"create": {"body": map[string]any{"ticket_id": "T-100"}},
		"user_tickets": {"body": map[string]any{
			"tickets": []any{map[string]any{"id": "T-100", "status": "open"}},
		}},
	}}
	app := newTestApp(t, invoker)
	token := login(t, app, "alice@nsight.com", "user-pass")

	check, _ := json.Marshal(map[string]string{"issue": "vpn drops every hour"})
	req := httptest.NewRequest(http.MethodPost, "/tickets/check-resolution", bytes.NewReader(check))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("check-resolution: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check-resolution status = %d", resp.StatusCode)
	}

	submit, _ := json.Marshal(map[string]string{"title": "VPN issue"})
	req = httptest.NewRequest(http.MethodPost, "/tickets/", bytes.NewReader(submit))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("submit status = %d, body %s", resp.StatusCode, raw)
	}

	var payload struct {
		Data struct {
			TicketID string `json:"ticket_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.TicketID != "T-100" {
		t.Errorf("ticket_id = %q, want T-100", payload.Data.TicketID)
	}
}

func TestSubmitWithoutCheckFails(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubInvoker{responses: map[string]map[string]any{}})
	token := login(t, app, "alice@nsight.com", "user-pass")

	submit, _ := json.Marshal(map[string]string{"title": "orphan ticket"})
	req := httptest.NewRequest(http.MethodPost, "/tickets/", bytes.NewReader(submit))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without prior check-resolution", resp.StatusCode)
	}
}

func TestAdminStats(t *testing.T) {
	t.Parallel()

	invoker := &stubInvoker{responses: map[string]map[string]any{
		"all_tickets": {"body": map[string]any{"tickets": []any{
			map[string]any{"id": "T-1", "status": "open"},
			map[string]any{"id": "T-2", "status": "resolved"},
		}}},
	}}
	app := newTestApp(t, invoker)
	token := login(t, app, "admin@nsight.com", "admin-pass")

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Total    int `json:"total"`
			Open     int `json:"open"`
			Resolved int `json:"resolved"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.Total != 2 || payload.Data.Open != 1 || payload.Data.Resolved != 1 {
		t.Errorf("stats = %+v", payload.Data)
	}
}
