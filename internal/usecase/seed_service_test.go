package usecase

import (
	"errors"
	"testing"

	"github.com/clubops/matchday-ops/internal/infrastructure/repository/memory"
	idgen "github.com/clubops/matchday-ops/internal/platform/id"
)

func TestSeedService_GenerateForUpcoming(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(memory.SeedTemplatePacks())
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	generator := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)
	svc := NewSeedService(fixtures, generator, nil)

	result, err := svc.GenerateForUpcoming(t.Context(), SeedInput{ClubID: memory.ClubIDNorthbridge, MaxWorkers: 2})
	if err != nil {
		t.Fatalf("generate for upcoming: %v", err)
	}

	// The cancelled fixture is excluded up front.
	if result.FixtureCount != 2 {
		t.Fatalf("unexpected fixture count: %d", result.FixtureCount)
	}
	if result.SuccessCount != 2 || result.FailedCount != 0 || result.SkippedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Fixtures) != 2 {
		t.Fatalf("unexpected row count: %d", len(result.Fixtures))
	}

	byFixture := make(map[string]SeedTaskResult, len(result.Fixtures))
	for _, row := range result.Fixtures {
		byFixture[row.FixtureID] = row
	}
	// Home fixture: Matchday (Home) + Every Match; away: Matchday (Away) + Every Match.
	if byFixture["fx-home"].Tasks != 7 {
		t.Fatalf("unexpected home task count: %d", byFixture["fx-home"].Tasks)
	}
	if byFixture["fx-away"].Tasks != 6 {
		t.Fatalf("unexpected away task count: %d", byFixture["fx-away"].Tasks)
	}

	persisted, err := tasks.ListByFixtureIDs(t.Context(), []string{"fx-home", "fx-away"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(persisted) != 13 {
		t.Fatalf("unexpected persisted count: %d", len(persisted))
	}
}

func TestSeedService_GenerateForUpcoming_SkipsFixturesWithoutPacks(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	catalog := memory.NewTemplateCatalog(nil)
	users := memory.NewUserDirectory(memory.SeedUsers())
	tasks := memory.NewTaskRepository()

	generator := NewTaskGeneratorService(fixtures, catalog, users, tasks, idgen.NewRandomGenerator(), nil)
	svc := NewSeedService(fixtures, generator, nil)

	result, err := svc.GenerateForUpcoming(t.Context(), SeedInput{ClubID: memory.ClubIDNorthbridge})
	if err != nil {
		t.Fatalf("generate for upcoming: %v", err)
	}
	if result.SkippedCount != 2 || result.SuccessCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestSeedService_GenerateForUpcoming_EmptyClubID(t *testing.T) {
	fixtures, _ := newGeneratorFixtures(t)
	svc := NewSeedService(fixtures, nil, nil)

	_, err := svc.GenerateForUpcoming(t.Context(), SeedInput{ClubID: " "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
