package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/clubops/matchday-ops/internal/domain/task"
)

type TaskRepository struct {
	mu    sync.RWMutex
	items map[string]task.Task
	// order keeps creation order so listings are stable without a
	// secondary sort in callers.
	order []string
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{items: make(map[string]task.Task)}
}

func (r *TaskRepository) ListByFixtureIDs(_ context.Context, fixtureIDs []string) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(fixtureIDs))
	for _, id := range fixtureIDs {
		wanted[id] = struct{}{}
	}

	var out []task.Task
	for _, id := range r.order {
		item := r.items[id]
		if _, ok := wanted[item.FixtureID]; !ok {
			continue
		}
		out = append(out, cloneTask(item))
	}
	return out, nil
}

func (r *TaskRepository) CreateBatch(_ context.Context, tasks []task.Task) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range tasks {
		if _, exists := r.items[item.ID]; exists {
			return nil, fmt.Errorf("task %s already exists", item.ID)
		}
	}

	out := make([]task.Task, 0, len(tasks))
	for _, item := range tasks {
		r.items[item.ID] = cloneTask(item)
		r.order = append(r.order, item.ID)
		out = append(out, cloneTask(item))
	}
	return out, nil
}

func (r *TaskRepository) UpdateOwner(_ context.Context, taskID, newOwnerID string) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[taskID]
	if !ok {
		return task.Task{}, fmt.Errorf("%w: id=%s", task.ErrNotFound, taskID)
	}

	item.OwnerUserID = newOwnerID
	r.items[taskID] = item
	return cloneTask(item), nil
}

func cloneTask(t task.Task) task.Task {
	copied := t
	if t.DueAt != nil {
		due := *t.DueAt
		copied.DueAt = &due
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		copied.CompletedAt = &at
	}
	return copied
}
