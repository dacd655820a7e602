package httpapi

import (
	"net/http"
	"time"

	"github.com/clubops/matchday-ops/internal/usecase"
)

type riskSummaryResponse struct {
	Critical      int           `json:"critical"`
	Warning       int           `json:"warning"`
	OK            int           `json:"ok"`
	Total         int           `json:"total"`
	CriticalTasks []taskRiskDTO `json:"critical_tasks"`
	WarningTasks  []taskRiskDTO `json:"warning_tasks"`
}

type taskRiskDTO struct {
	Task      taskDTO   `json:"task"`
	FixtureID string    `json:"fixture_id"`
	Opponent  string    `json:"opponent"`
	Venue     string    `json:"venue"`
	KickoffAt time.Time `json:"kickoff_at"`
	Reasons   []string  `json:"reasons"`
}

func (h *Handler) GetRiskSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRiskSummary")
	defer span.End()

	clubID := r.PathValue("clubID")

	summary, err := h.riskService.Summarize(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "risk summary failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, riskSummaryResponse{
		Critical:      summary.Critical,
		Warning:       summary.Warning,
		OK:            summary.OK,
		Total:         summary.Total,
		CriticalTasks: taskRisksToDTOs(summary.CriticalTasks),
		WarningTasks:  taskRisksToDTOs(summary.WarningTasks),
	})
}

func taskRisksToDTOs(risks []usecase.TaskRisk) []taskRiskDTO {
	items := make([]taskRiskDTO, 0, len(risks))
	for _, risk := range risks {
		items = append(items, taskRiskDTO{
			Task:      taskToDTO(risk.Task),
			FixtureID: risk.Fixture.ID,
			Opponent:  risk.Fixture.Opponent,
			Venue:     risk.Fixture.Venue,
			KickoffAt: risk.Fixture.KickoffAt,
			Reasons:   risk.Reasons,
		})
	}
	return items
}
