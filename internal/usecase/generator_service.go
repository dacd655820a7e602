package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/clubuser"
	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/task"
	"github.com/clubops/matchday-ops/internal/domain/template"
	idgen "github.com/clubops/matchday-ops/internal/platform/id"
	"github.com/clubops/matchday-ops/internal/platform/logging"
)

// TaskGeneratorService expands enabled, venue-relevant template packs for
// one fixture into persisted tasks. Generation is deliberately not
// idempotent: re-running it against an already populated fixture appends a
// fresh batch with a sort_order range after the existing one.
type TaskGeneratorService struct {
	fixtures fixture.Directory
	catalog  template.Catalog
	users    clubuser.Directory
	tasks    task.Repository
	ids      idgen.Generator
	logger   *logging.Logger
}

func NewTaskGeneratorService(
	fixtures fixture.Directory,
	catalog template.Catalog,
	users clubuser.Directory,
	tasks task.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *TaskGeneratorService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TaskGeneratorService{
		fixtures: fixtures,
		catalog:  catalog,
		users:    users,
		tasks:    tasks,
		ids:      ids,
		logger:   logger,
	}
}

// GenerateForFixture loads the fixture, the enabled packs and the active
// roster, builds the task batch, and persists it through one batch create.
// A store failure aborts the whole call; there is no partial commit.
func (s *TaskGeneratorService) GenerateForFixture(ctx context.Context, clubID, fixtureID string) ([]task.Task, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TaskGeneratorService.GenerateForFixture")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	fixtureID = strings.TrimSpace(fixtureID)
	if clubID == "" || fixtureID == "" {
		return nil, fmt.Errorf("%w: club_id and fixture_id are required", ErrInvalidInput)
	}

	fx, err := s.findUpcomingFixture(ctx, clubID, fixtureID)
	if err != nil {
		return nil, err
	}

	packs, err := s.catalog.ListEnabled(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list enabled template packs: %w", err)
	}

	users, err := s.users.ListActive(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list active club users: %w", err)
	}

	existing, err := s.tasks.ListByFixtureIDs(ctx, []string{fixtureID})
	if err != nil {
		return nil, fmt.Errorf("list existing fixture tasks: %w", err)
	}

	built, err := buildFixtureTasks(fx, packs, users, nextSortOrder(existing), s.ids)
	if err != nil {
		return nil, err
	}
	if len(built) == 0 {
		s.logger.InfoContext(ctx, "no relevant template packs for fixture",
			"club_id", clubID, "fixture_id", fixtureID, "venue", fx.Venue)
		return nil, nil
	}

	created, err := s.tasks.CreateBatch(ctx, built)
	if err != nil {
		return nil, fmt.Errorf("create task batch: %w", err)
	}

	s.logger.InfoContext(ctx, "fixture checklist generated",
		"club_id", clubID, "fixture_id", fixtureID, "tasks_created", len(created))

	return created, nil
}

func (s *TaskGeneratorService) findUpcomingFixture(ctx context.Context, clubID, fixtureID string) (fixture.Fixture, error) {
	fixtures, err := s.fixtures.ListUpcoming(ctx, clubID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("list upcoming fixtures: %w", err)
	}

	for _, fx := range fixtures {
		if fx.ID != fixtureID {
			continue
		}
		if fx.IsCancelled() {
			return fixture.Fixture{}, fmt.Errorf("%w: fixture %s is cancelled", ErrInvalidInput, fixtureID)
		}
		return fx, nil
	}

	return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
}

// buildFixtureTasks is the pure expansion step: relevance filtering, one
// monotonically increasing sort_order counter across all relevant packs in
// catalog order, owner role resolution, auto-assignment, and due dates.
func buildFixtureTasks(
	fx fixture.Fixture,
	packs []template.Pack,
	users []clubuser.User,
	firstSortOrder int,
	ids idgen.Generator,
) ([]task.Task, error) {
	venue := fixture.NormalizeVenue(fx.Venue)
	sortOrder := firstSortOrder

	var out []task.Task
	for _, pack := range packs {
		if !pack.Enabled || !pack.AppliesTo(venue) {
			continue
		}

		for _, def := range pack.Tasks {
			taskID, err := ids.NewID()
			if err != nil {
				return nil, fmt.Errorf("generate task id: %w", err)
			}

			item := task.Task{
				ID:             taskID,
				ClubID:         fx.ClubID,
				FixtureID:      fx.ID,
				TemplatePackID: pack.ID,
				Label:          def.Label,
				SortOrder:      sortOrder,
				// The resolved role is recorded even when no matching
				// active user is found.
				OwnerRole: pack.OwnerRoleFor(def),
			}
			sortOrder++

			if item.OwnerRole != "" {
				if owner, ok := clubuser.FirstActiveWithRole(users, item.OwnerRole); ok {
					item.OwnerUserID = owner.ID
				}
			}

			if def.OffsetHours != nil && !fx.KickoffAt.IsZero() {
				due := fx.KickoffAt.Add(time.Duration(*def.OffsetHours) * time.Hour)
				item.DueAt = &due
			}

			out = append(out, item)
		}
	}

	return out, nil
}

func nextSortOrder(existing []task.Task) int {
	next := 0
	for _, t := range existing {
		if t.SortOrder >= next {
			next = t.SortOrder + 1
		}
	}
	return next
}
