package postgres

import (
	"context"
	"fmt"

	"github.com/clubops/matchday-ops/internal/domain/template"
	qb "github.com/clubops/matchday-ops/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TemplateCatalog struct {
	db *sqlx.DB
}

func NewTemplateCatalog(db *sqlx.DB) *TemplateCatalog {
	return &TemplateCatalog{db: db}
}

// ListEnabled loads packs and their task definitions in authored position
// order; generated sort_order follows this order.
func (r *TemplateCatalog) ListEnabled(ctx context.Context, clubID string) ([]template.Pack, error) {
	packQuery, packArgs, err := qb.Select("*").From("template_packs").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("enabled", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select template packs query: %w", err)
	}

	var packRows []templatePackTableModel
	if err := r.db.SelectContext(ctx, &packRows, packQuery, packArgs...); err != nil {
		return nil, fmt.Errorf("select template packs: %w", err)
	}
	if len(packRows) == 0 {
		return nil, nil
	}

	packIDs := make([]any, 0, len(packRows))
	for _, row := range packRows {
		packIDs = append(packIDs, row.PublicID)
	}

	taskQuery, taskArgs, err := qb.Select("*").From("template_tasks").
		Where(
			qb.In("pack_public_id", packIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select template tasks query: %w", err)
	}

	var taskRows []templateTaskTableModel
	if err := r.db.SelectContext(ctx, &taskRows, taskQuery, taskArgs...); err != nil {
		return nil, fmt.Errorf("select template tasks: %w", err)
	}

	tasksByPack := make(map[string][]template.Task, len(packRows))
	for _, row := range taskRows {
		def := template.Task{
			Label:            row.Label,
			DefaultOwnerRole: fromNullString(row.DefaultOwnerRole),
		}
		if row.OffsetHours.Valid {
			offset := int(row.OffsetHours.Int64)
			def.OffsetHours = &offset
		}
		tasksByPack[row.PackID] = append(tasksByPack[row.PackID], def)
	}

	out := make([]template.Pack, 0, len(packRows))
	for _, row := range packRows {
		out = append(out, template.Pack{
			ID:               row.PublicID,
			ClubID:           row.ClubID,
			Name:             row.Name,
			Enabled:          row.Enabled,
			AutoApply:        fromNullString(row.AutoApply),
			DefaultOwnerRole: fromNullString(row.DefaultOwnerRole),
			Tasks:            tasksByPack[row.PublicID],
		})
	}

	return out, nil
}
