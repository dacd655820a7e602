package httpapi

import (
	"net/http"

	"github.com/clubops/matchday-ops/internal/usecase"
)

type generateFixtureTasksResponse struct {
	FixtureID string    `json:"fixture_id"`
	TaskCount int       `json:"task_count"`
	Tasks     []taskDTO `json:"tasks"`
}

type generateUpcomingTasksRequest struct {
	MaxWorkers int `json:"max_workers" validate:"omitempty,gte=1,lte=64"`
}

func (h *Handler) GenerateFixtureTasks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtureTasks")
	defer span.End()

	clubID := r.PathValue("clubID")
	fixtureID := r.PathValue("fixtureID")

	tasks, err := h.generatorService.GenerateForFixture(ctx, clubID, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixture tasks failed", "club_id", clubID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, generateFixtureTasksResponse{
		FixtureID: fixtureID,
		TaskCount: len(tasks),
		Tasks:     tasksToDTOs(tasks),
	})
}

func (h *Handler) GenerateUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateUpcomingTasks")
	defer span.End()

	clubID := r.PathValue("clubID")

	var req generateUpcomingTasksRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.seedService.GenerateForUpcoming(ctx, usecase.SeedInput{
		ClubID:     clubID,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate upcoming tasks failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
