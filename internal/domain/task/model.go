package task

import "time"

// Task is one concrete matchday duty, either generated from a template pack
// or added ad hoc (TemplatePackID empty). Invariant: IsCompleted is true
// exactly when CompletedAt is set; Complete and Reopen keep the two fields
// in lockstep.
type Task struct {
	ID             string
	ClubID         string
	FixtureID      string
	TemplatePackID string
	Label          string
	SortOrder      int
	IsCompleted    bool
	CompletedBy    string
	CompletedAt    *time.Time
	OwnerUserID    string
	BackupUserID   string
	OwnerRole      string
	DueAt          *time.Time
}

// Open reports whether the task still counts for risk classification and
// handover selection.
func (t Task) Open() bool {
	return !t.IsCompleted
}

func (t Task) Assigned() bool {
	return t.OwnerUserID != ""
}

func (t *Task) Complete(userID string, at time.Time) {
	completedAt := at
	t.IsCompleted = true
	t.CompletedBy = userID
	t.CompletedAt = &completedAt
}

func (t *Task) Reopen() {
	t.IsCompleted = false
	t.CompletedBy = ""
	t.CompletedAt = nil
}
