package task

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// Repository is the single source of truth for task ownership.
type Repository interface {
	ListByFixtureIDs(ctx context.Context, fixtureIDs []string) ([]Task, error)
	// CreateBatch persists the whole batch or nothing; there is no partial
	// commit and no per-task retry.
	CreateBatch(ctx context.Context, tasks []Task) ([]Task, error)
	UpdateOwner(ctx context.Context, taskID, newOwnerID string) (Task, error)
}
