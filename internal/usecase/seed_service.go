package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/fixture"
	"github.com/clubops/matchday-ops/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const (
	seedStatusSuccess = "success"
	seedStatusFailed  = "failed"
	seedStatusSkipped = "skipped"
)

type SeedInput struct {
	ClubID     string
	MaxWorkers int
}

type SeedResult struct {
	FixtureCount int              `json:"fixture_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	SkippedCount int              `json:"skipped_count"`
	WorkerCount  int              `json:"worker_count"`
	Fixtures     []SeedTaskResult `json:"fixtures"`
}

type SeedTaskResult struct {
	FixtureID  string `json:"fixture_id"`
	Opponent   string `json:"opponent"`
	Status     string `json:"status"`
	Tasks      int    `json:"tasks"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// SeedService fans task generation out over every upcoming fixture of a
// club, one pool worker per fixture. Fixtures fail independently.
type SeedService struct {
	fixtures  fixture.Directory
	generator *TaskGeneratorService
	logger    *logging.Logger
}

func NewSeedService(fixtures fixture.Directory, generator *TaskGeneratorService, logger *logging.Logger) *SeedService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeedService{
		fixtures:  fixtures,
		generator: generator,
		logger:    logger,
	}
}

func (s *SeedService) GenerateForUpcoming(ctx context.Context, input SeedInput) (SeedResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.GenerateForUpcoming")
	defer span.End()

	if strings.TrimSpace(input.ClubID) == "" {
		return SeedResult{}, fmt.Errorf("%w: club_id is required", ErrInvalidInput)
	}

	upcoming, err := s.fixtures.ListUpcoming(ctx, input.ClubID)
	if err != nil {
		return SeedResult{}, fmt.Errorf("list upcoming fixtures: %w", err)
	}

	targets := make([]fixture.Fixture, 0, len(upcoming))
	for _, fx := range upcoming {
		if fx.IsCancelled() {
			continue
		}
		targets = append(targets, fx)
	}

	workerCount := normalizeSeedWorkerCount(input.MaxWorkers, len(targets))
	result := SeedResult{
		FixtureCount: len(targets),
		WorkerCount:  workerCount,
		Fixtures:     make([]SeedTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	rows := make(chan SeedTaskResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SeedResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, fx := range targets {
		fx := fx
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SeedTaskResult{
				FixtureID: fx.ID,
				Opponent:  fx.Opponent,
			}

			created, err := s.generator.GenerateForFixture(ctx, input.ClubID, fx.ID)
			switch {
			case err != nil:
				row.Status = seedStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			case len(created) == 0:
				row.Status = seedStatusSkipped
				row.Message = "no enabled template pack applies to this fixture"
				skippedCount.Add(1)
			default:
				row.Status = seedStatusSuccess
				row.Tasks = len(created)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return SeedResult{}, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Fixtures = append(result.Fixtures, row)
	}

	sort.SliceStable(result.Fixtures, func(i, j int) bool {
		return result.Fixtures[i].FixtureID < result.Fixtures[j].FixtureID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "bulk task generation finished",
		"club_id", input.ClubID,
		"fixtures", result.FixtureCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount)
	return result, nil
}

func normalizeSeedWorkerCount(value int, fixtureCount int) int {
	if fixtureCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > fixtureCount {
		value = fixtureCount
	}
	return value
}
