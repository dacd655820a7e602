package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/fixture"
)

type FixtureDirectory struct {
	mu             sync.RWMutex
	fixturesByClub map[string][]fixture.Fixture
	now            func() time.Time
}

func NewFixtureDirectory(fixtures []fixture.Fixture) *FixtureDirectory {
	fixturesByClub := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesByClub[item.ClubID] = append(fixturesByClub[item.ClubID], item)
	}

	return &FixtureDirectory{
		fixturesByClub: fixturesByClub,
		now:            time.Now,
	}
}

func (r *FixtureDirectory) ListUpcoming(_ context.Context, clubID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now().UTC()
	items := r.fixturesByClub[clubID]
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		if item.KickoffAt.Before(now) {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})
	return out, nil
}

func (r *FixtureDirectory) Upsert(_ context.Context, fx fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.fixturesByClub[fx.ClubID]
	for i, item := range items {
		if item.ID == fx.ID {
			items[i] = fx
			return nil
		}
	}
	r.fixturesByClub[fx.ClubID] = append(items, fx)
	return nil
}
