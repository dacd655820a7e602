package memory

import (
	"context"
	"sync"

	"github.com/clubops/matchday-ops/internal/domain/clubuser"
)

type UserDirectory struct {
	mu          sync.RWMutex
	usersByClub map[string][]clubuser.User
}

func NewUserDirectory(users []clubuser.User) *UserDirectory {
	usersByClub := make(map[string][]clubuser.User)
	for _, item := range users {
		usersByClub[item.ClubID] = append(usersByClub[item.ClubID], item)
	}

	return &UserDirectory{usersByClub: usersByClub}
}

// ListActive preserves insertion order, which decides role-based
// assignment ties.
func (r *UserDirectory) ListActive(_ context.Context, clubID string) ([]clubuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.usersByClub[clubID]
	out := make([]clubuser.User, 0, len(items))
	for _, item := range items {
		if !item.IsActive() {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *UserDirectory) Upsert(_ context.Context, u clubuser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.usersByClub[u.ClubID]
	for i, item := range items {
		if item.ID == u.ID {
			items[i] = u
			return nil
		}
	}
	r.usersByClub[u.ClubID] = append(items, u)
	return nil
}
