package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/task"
	"github.com/clubops/matchday-ops/internal/platform/logging"
)

type RiskLevel string

const (
	RiskOK       RiskLevel = "ok"
	RiskWarning  RiskLevel = "warning"
	RiskCritical RiskLevel = "critical"
)

const (
	// riskSummaryWindow bounds the club-wide summary; the handover window
	// is deliberately wider (unbounded).
	riskSummaryWindow = 7 * 24 * time.Hour

	dueWarningWindow      = 2 * time.Hour
	kickoffCriticalWindow = 2 * time.Hour
	kickoffWarningWindow  = 24 * time.Hour
)

// RiskAssessment is the derived urgency of one task. Reasons accumulate
// across the independently evaluated axes; Level is their maximum.
type RiskAssessment struct {
	TaskID  string
	Level   RiskLevel
	Reasons []string
}

// TaskRisk pairs a classified task with its fixture for display.
type TaskRisk struct {
	Task    task.Task
	Fixture fixture.Fixture
	Reasons []string
}

// RiskSummary partitions a club's open tasks by level. Total counts only
// evaluated (open) tasks.
type RiskSummary struct {
	Critical int
	Warning  int
	OK       int
	Total    int

	CriticalTasks []TaskRisk
	WarningTasks  []TaskRisk
}

// AssessTask scores one task. Pure: no clock reads, no collaborator calls.
// fx may be nil for tasks without a linked fixture, which switches the
// assignment axis to its context-free form.
func AssessTask(t task.Task, fx *fixture.Fixture, now time.Time) RiskAssessment {
	out := RiskAssessment{TaskID: t.ID, Level: RiskOK}

	// Completed tasks short-circuit every other rule.
	if !t.Open() {
		return out
	}

	if t.DueAt != nil {
		untilDue := t.DueAt.Sub(now)
		if untilDue < 0 {
			out.escalate(RiskCritical, "Overdue")
		} else if untilDue < dueWarningWindow {
			out.escalate(RiskWarning, fmt.Sprintf("Due in %d minutes", int(math.Round(untilDue.Minutes()))))
		}
	}

	if !t.Assigned() {
		switch {
		case fx == nil:
			if out.Level != RiskCritical {
				out.escalate(RiskWarning, "Unassigned")
			}
		case fx.KickoffAt.Sub(now) < kickoffCriticalWindow:
			out.escalate(RiskCritical, "Unassigned with kickoff soon")
		case fx.KickoffAt.Sub(now) < kickoffWarningWindow:
			if out.Level != RiskCritical {
				out.escalate(RiskWarning, "Unassigned")
			}
		}
	}

	return out
}

// escalate raises the level when the new one is more severe and records the
// reason; it never downgrades.
func (a *RiskAssessment) escalate(level RiskLevel, reason string) {
	if riskRank(level) > riskRank(a.Level) {
		a.Level = level
	}
	a.Reasons = append(a.Reasons, reason)
}

func riskRank(level RiskLevel) int {
	switch level {
	case RiskCritical:
		return 2
	case RiskWarning:
		return 1
	default:
		return 0
	}
}

// RiskService aggregates per-task assessments into a club-wide summary.
type RiskService struct {
	fixtures fixture.Directory
	tasks    task.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewRiskService(fixtures fixture.Directory, tasks task.Repository, logger *logging.Logger) *RiskService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RiskService{
		fixtures: fixtures,
		tasks:    tasks,
		logger:   logger,
		now:      time.Now,
	}
}

// Summarize classifies every open task of non-cancelled fixtures kicking
// off within the next 7 days (inclusive). Collaborator read failures
// degrade to an empty summary instead of erroring, so dashboards never
// hard-fail on a transient read.
func (s *RiskService) Summarize(ctx context.Context, clubID string) (RiskSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RiskService.Summarize")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return RiskSummary{}, fmt.Errorf("%w: club_id is required", ErrInvalidInput)
	}

	now := s.now().UTC()

	upcoming, err := s.fixtures.ListUpcoming(ctx, clubID)
	if err != nil {
		s.logger.WarnContext(ctx, "risk summary degraded to empty", "club_id", clubID, "error", err)
		return RiskSummary{}, nil
	}

	window := make([]fixture.Fixture, 0, len(upcoming))
	for _, fx := range upcoming {
		if fx.IsCancelled() {
			continue
		}
		if !fx.KicksOffWithin(now, riskSummaryWindow) {
			continue
		}
		window = append(window, fx)
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].KickoffAt.Before(window[j].KickoffAt)
	})

	if len(window) == 0 {
		return RiskSummary{}, nil
	}

	fixtureIDs := make([]string, 0, len(window))
	for _, fx := range window {
		fixtureIDs = append(fixtureIDs, fx.ID)
	}

	tasks, err := s.tasks.ListByFixtureIDs(ctx, fixtureIDs)
	if err != nil {
		s.logger.WarnContext(ctx, "risk summary degraded to empty", "club_id", clubID, "error", err)
		return RiskSummary{}, nil
	}

	tasksByFixture := make(map[string][]task.Task, len(window))
	for _, t := range tasks {
		tasksByFixture[t.FixtureID] = append(tasksByFixture[t.FixtureID], t)
	}

	var out RiskSummary
	for _, fx := range window {
		fixtureTasks := tasksByFixture[fx.ID]
		sort.SliceStable(fixtureTasks, func(i, j int) bool {
			return fixtureTasks[i].SortOrder < fixtureTasks[j].SortOrder
		})

		for _, t := range fixtureTasks {
			if !t.Open() {
				continue
			}

			assessment := AssessTask(t, &fx, now)
			out.Total++

			switch assessment.Level {
			case RiskCritical:
				out.Critical++
				out.CriticalTasks = append(out.CriticalTasks, TaskRisk{Task: t, Fixture: fx, Reasons: assessment.Reasons})
			case RiskWarning:
				out.Warning++
				out.WarningTasks = append(out.WarningTasks, TaskRisk{Task: t, Fixture: fx, Reasons: assessment.Reasons})
			default:
				out.OK++
			}
		}
	}

	return out, nil
}
