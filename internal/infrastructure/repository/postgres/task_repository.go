package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/task"
	qb "github.com/clubops/matchday-ops/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByFixtureIDs(ctx context.Context, fixtureIDs []string) ([]task.Task, error) {
	if len(fixtureIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(fixtureIDs))
	for _, id := range fixtureIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("tasks").
		Where(
			qb.In("fixture_public_id", ids),
			qb.IsNull("deleted_at"),
		).
		OrderBy("fixture_public_id", "sort_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tasks by fixtures query: %w", err)
	}

	var rows []taskTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tasks by fixtures: %w", err)
	}

	out := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// CreateBatch inserts the whole batch inside one transaction so a failed
// row never leaves a half-generated checklist behind.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	builder := qb.InsertInto("tasks").Columns(
		"public_id",
		"club_public_id",
		"fixture_public_id",
		"template_pack_public_id",
		"label",
		"sort_order",
		"is_completed",
		"owner_user_public_id",
		"backup_user_public_id",
		"owner_role",
		"due_at",
	)
	for _, item := range tasks {
		builder.Values(
			item.ID,
			item.ClubID,
			item.FixtureID,
			toNullString(item.TemplatePackID),
			item.Label,
			item.SortOrder,
			item.IsCompleted,
			toNullString(item.OwnerUserID),
			toNullString(item.BackupUserID),
			toNullString(item.OwnerRole),
			item.DueAt,
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert tasks query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert tasks tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert tasks tx: %w", err)
	}

	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

func (r *TaskRepository) UpdateOwner(ctx context.Context, taskID, newOwnerID string) (task.Task, error) {
	query, args, err := qb.Update("tasks").
		Set("owner_user_public_id", toNullString(newOwnerID)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", taskID),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return task.Task{}, fmt.Errorf("build update task owner query: %w", err)
	}

	var row taskTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return task.Task{}, fmt.Errorf("%w: id=%s", task.ErrNotFound, taskID)
		}
		return task.Task{}, fmt.Errorf("update task owner: %w", err)
	}

	return row.toDomain(), nil
}
