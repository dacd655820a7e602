package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/clubops/matchday-ops/internal/infrastructure/repository/memory"
	idgen "github.com/clubops/matchday-ops/internal/platform/id"
	"github.com/clubops/matchday-ops/internal/platform/logging"
	"github.com/clubops/matchday-ops/internal/usecase"
)

type apiHarness struct {
	router http.Handler
	tasks  *memory.TaskRepository
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	logger := logging.NewNop()
	fixtures := memory.NewFixtureDirectory(memory.SeedFixtures(time.Now().UTC()))
	users := memory.NewUserDirectory(memory.SeedUsers())
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	tasks := memory.NewTaskRepository()
	sink := memory.NewAuditSink()

	generator := usecase.NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), logger)
	seeder := usecase.NewSeedService(fixtures, generator, logger)
	risk := usecase.NewRiskService(fixtures, tasks, logger)
	handover := usecase.NewHandoverService(fixtures, users, tasks, sink, logger)

	handler := NewHandler(generator, seeder, risk, handover, logger)
	return &apiHarness{
		router: NewRouter(handler, logger, []string{"*"}),
		tasks:  tasks,
	}
}

func (h *apiHarness) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return rec, envelope
}

func TestRouter_Healthz(t *testing.T) {
	h := newAPIHarness(t)

	rec, envelope := h.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	if data["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", data["status"])
	}
}

func TestRouter_GenerateFixtureTasks(t *testing.T) {
	h := newAPIHarness(t)

	rec, envelope := h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/fixtures/fx-nb-001/tasks:generate", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	if got := data["task_count"].(float64); got != 7 {
		t.Fatalf("expected 7 tasks for a home fixture, got %v", got)
	}

	persisted, err := h.tasks.ListByFixtureIDs(context.Background(), []string{"fx-nb-001"})
	if err != nil {
		t.Fatalf("list persisted tasks: %v", err)
	}
	if len(persisted) != 7 {
		t.Fatalf("expected 7 persisted tasks, got %d", len(persisted))
	}
}

func TestRouter_GenerateFixtureTasks_UnknownFixture(t *testing.T) {
	h := newAPIHarness(t)

	rec, _ := h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/fixtures/fx-missing/tasks:generate", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_GenerateUpcomingTasks(t *testing.T) {
	h := newAPIHarness(t)

	rec, envelope := h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/tasks:generate-upcoming", `{"max_workers":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	if got := data["fixture_count"].(float64); got != 3 {
		t.Fatalf("expected 3 seeded fixtures, got %v", got)
	}
	if got := data["success_count"].(float64); got != 3 {
		t.Fatalf("expected 3 successful fixtures, got %v", got)
	}
}

func TestRouter_GenerateUpcomingTasks_RejectsUnknownFields(t *testing.T) {
	h := newAPIHarness(t)

	rec, _ := h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/tasks:generate-upcoming", `{"workers":2}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RiskSummary(t *testing.T) {
	h := newAPIHarness(t)

	h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/fixtures/fx-nb-001/tasks:generate", "")

	rec, envelope := h.do(t, http.MethodGet, "/v1/clubs/"+memory.ClubIDNorthbridge+"/risk-summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	total := data["total"].(float64)
	if total != 7 {
		t.Fatalf("expected 7 evaluated tasks, got %v", total)
	}
}

func TestRouter_HandoverPreviewAndExecute(t *testing.T) {
	h := newAPIHarness(t)
	h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/fixtures/fx-nb-001/tasks:generate", "")

	previewBody := `{"from_user_id":"usr-jonas","target":{"type":"user","user_id":"usr-priya"}}`
	rec, envelope := h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/handovers:preview", previewBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelope["data"].(map[string]any)
	if got := data["tasks_affected"].(float64); got != 3 {
		t.Fatalf("expected preview to affect 3 groundskeeper tasks, got %v", got)
	}

	executeBody := `{"actor_user_id":"usr-priya","from_user_id":"usr-jonas","target":{"type":"user","user_id":"usr-priya"}}`
	rec, envelope = h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/handovers", executeBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data = envelope["data"].(map[string]any)
	if got := data["success"].(bool); !got {
		t.Fatalf("expected handover success, got %v", envelope)
	}
	if got := data["tasks_affected"].(float64); got != 3 {
		t.Fatalf("expected 3 reassigned tasks, got %v", got)
	}

	persisted, err := h.tasks.ListByFixtureIDs(context.Background(), []string{"fx-nb-001"})
	if err != nil {
		t.Fatalf("list persisted tasks: %v", err)
	}
	for _, item := range persisted {
		if item.OwnerUserID == "usr-jonas" {
			t.Fatalf("expected no tasks left on usr-jonas, found %q", item.Label)
		}
	}
}

func TestRouter_HandoverExecute_MissingActor(t *testing.T) {
	h := newAPIHarness(t)

	body := `{"from_user_id":"usr-jonas","target":{"type":"backup"}}`
	rec, _ := h.do(t, http.MethodPost, "/v1/clubs/"+memory.ClubIDNorthbridge+"/handovers", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
