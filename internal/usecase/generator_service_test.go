package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/domain/template"
	"github.com/clubops/matchday-ops/internal/infrastructure/repository/memory"
	idgen "github.com/clubops/matchday-ops/internal/platform/id"
)

func newGeneratorFixtures(t *testing.T) (*memory.FixtureDirectory, time.Time) {
	t.Helper()

	kickoff := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	fixtures := memory.NewFixtureDirectory([]fixture.Fixture{
		{
			ID:        "fx-home",
			ClubID:    memory.ClubIDNorthbridge,
			Opponent:  "Eastvale Rovers",
			KickoffAt: kickoff,
			Venue:     fixture.VenueHome,
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        "fx-away",
			ClubID:    memory.ClubIDNorthbridge,
			Opponent:  "Harbour Town FC",
			KickoffAt: kickoff.Add(72 * time.Hour),
			Venue:     fixture.VenueAway,
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        "fx-cancelled",
			ClubID:    memory.ClubIDNorthbridge,
			Opponent:  "Millfield Athletic",
			KickoffAt: kickoff.Add(96 * time.Hour),
			Venue:     fixture.VenueHome,
			Status:    fixture.StatusCancelled,
		},
	})
	return fixtures, kickoff
}

func TestTaskGeneratorService_GenerateForFixture_HomeVenue(t *testing.T) {
	fixtures, kickoff := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	created, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("generate for fixture: %v", err)
	}

	// Four tasks from Matchday (Home) plus three from Every Match; the
	// away pack must not contribute.
	if len(created) != 7 {
		t.Fatalf("unexpected task count: got=%d want=7", len(created))
	}
	for i, item := range created {
		if item.SortOrder != i {
			t.Fatalf("sort_order not monotonic: index=%d sort_order=%d", i, item.SortOrder)
		}
		if item.TemplatePackID == memory.PackIDMatchdayAway {
			t.Fatalf("away pack leaked into home fixture: %s", item.Label)
		}
	}

	first := created[0]
	if first.Label != "Prepare home kit" {
		t.Fatalf("unexpected first label: %s", first.Label)
	}
	if first.OwnerRole != "Kit Manager" {
		t.Fatalf("unexpected owner role: %s", first.OwnerRole)
	}
	if first.OwnerUserID != "usr-mia" {
		t.Fatalf("expected first active kit manager, got %s", first.OwnerUserID)
	}
	if first.DueAt == nil || !first.DueAt.Equal(kickoff.Add(-24*time.Hour)) {
		t.Fatalf("unexpected due date: %v", first.DueAt)
	}
}

func TestTaskGeneratorService_GenerateForFixture_TaskRoleOverridesPackRole(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	created, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("generate for fixture: %v", err)
	}

	var found bool
	for _, item := range created {
		if item.Label != "Line the pitch" {
			continue
		}
		found = true
		if item.OwnerRole != "Groundskeeper" {
			t.Fatalf("task-level role should override pack default, got %s", item.OwnerRole)
		}
		if item.OwnerUserID != "usr-jonas" {
			t.Fatalf("unexpected assignee: %s", item.OwnerUserID)
		}
	}
	if !found {
		t.Fatal("expected task 'Line the pitch' to be generated")
	}
}

func TestTaskGeneratorService_GenerateForFixture_RerunAppendsDisjointRange(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	first, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	maxFirst := 0
	for _, item := range first {
		if item.SortOrder > maxFirst {
			maxFirst = item.SortOrder
		}
	}
	for _, item := range second {
		if item.SortOrder <= maxFirst {
			t.Fatalf("second batch overlaps first: sort_order=%d max_first=%d", item.SortOrder, maxFirst)
		}
	}

	all, err := tasks.ListByFixtureIDs(t.Context(), []string{"fx-home"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(all) != len(first)+len(second) {
		t.Fatalf("unexpected persisted count: %d", len(all))
	}
}

func TestTaskGeneratorService_GenerateForFixture_UnknownFixture(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	_, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskGeneratorService_GenerateForFixture_CancelledFixture(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	_, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-cancelled")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskGeneratorService_GenerateForFixture_NoRelevantPacks(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog([]template.Pack{
		{
			ID:        "pack-disabled",
			ClubID:    memory.ClubIDNorthbridge,
			Name:      "Disabled Pack",
			Enabled:   false,
			AutoApply: template.AutoApplyAlways,
			Tasks:     []template.Task{{Label: "Never generated"}},
		},
		{
			ID:        "pack-never",
			ClubID:    memory.ClubIDNorthbridge,
			Name:      "Manual Only",
			Enabled:   true,
			AutoApply: template.AutoApplyNever,
			Tasks:     []template.Task{{Label: "Also never generated"}},
		},
	})
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	created, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("generate for fixture: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected empty batch, got %d tasks", len(created))
	}

	persisted, err := tasks.ListByFixtureIDs(t.Context(), []string{"fx-home"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("empty batch must not persist, got %d tasks", len(persisted))
	}
}

func TestTaskGeneratorService_GenerateForFixture_LegacyNameFallback(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	offset := -6
	catalog := memory.NewTemplateCatalog([]template.Pack{
		{
			ID:      "pack-legacy-away",
			ClubID:  memory.ClubIDNorthbridge,
			Name:    "Pre-match (Away)",
			Enabled: true,
			Tasks:   []template.Task{{Label: "Load the van", OffsetHours: &offset}},
		},
		{
			ID:      "pack-legacy-home",
			ClubID:  memory.ClubIDNorthbridge,
			Name:    "Pre-match (Home)",
			Enabled: true,
			Tasks:   []template.Task{{Label: "Open the turnstiles", OffsetHours: &offset}},
		},
		{
			// A structured policy beats a contradictory name marker.
			ID:        "pack-structured",
			ClubID:    memory.ClubIDNorthbridge,
			Name:      "Hospitality (Away)",
			Enabled:   true,
			AutoApply: template.AutoApplyHome,
			Tasks:     []template.Task{{Label: "Stock the boardroom", OffsetHours: &offset}},
		},
	})
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	created, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("generate for fixture: %v", err)
	}

	labels := make(map[string]bool, len(created))
	for _, item := range created {
		labels[item.Label] = true
	}
	if labels["Load the van"] {
		t.Fatal("legacy away pack must not apply to a home fixture")
	}
	if !labels["Open the turnstiles"] {
		t.Fatal("legacy home pack should apply to a home fixture")
	}
	if !labels["Stock the boardroom"] {
		t.Fatal("structured HOME policy should override the (Away) name marker")
	}
}

func TestTaskGeneratorService_GenerateForFixture_NilOffsetAndUnmatchedRole(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog([]template.Pack{
		{
			ID:               "pack-loose",
			ClubID:           memory.ClubIDNorthbridge,
			Name:             "Loose Ends",
			Enabled:          true,
			AutoApply:        template.AutoApplyAlways,
			DefaultOwnerRole: "Stadium Announcer",
			Tasks:            []template.Task{{Label: "Announce lineups"}},
		},
	})
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	svc := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)

	created, err := svc.GenerateForFixture(t.Context(), memory.ClubIDNorthbridge, "fx-home")
	if err != nil {
		t.Fatalf("generate for fixture: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("unexpected task count: %d", len(created))
	}

	item := created[0]
	if item.DueAt != nil {
		t.Fatalf("task without offset must have no due date, got %v", item.DueAt)
	}
	if item.OwnerRole != "Stadium Announcer" {
		t.Fatalf("role must be recorded even when unmatched, got %q", item.OwnerRole)
	}
	if item.OwnerUserID != "" {
		t.Fatalf("no roster match expected, got assignee %s", item.OwnerUserID)
	}
}
