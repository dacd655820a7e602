package postgres

import (
	"context"
	"fmt"

	"github.com/clubops/matchday-ops/internal/domain/clubuser"
	qb "github.com/clubops/matchday-ops/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type UserDirectory struct {
	db *sqlx.DB
}

func NewUserDirectory(db *sqlx.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

// ListActive returns the active roster ordered by insertion; that order is
// what makes role-based assignment deterministic.
func (r *UserDirectory) ListActive(ctx context.Context, clubID string) ([]clubuser.User, error) {
	query, args, err := qb.Select("*").From("club_users").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("status", clubuser.StatusActive),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active club users query: %w", err)
	}

	var rows []clubUserTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active club users: %w", err)
	}

	out := make([]clubuser.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubuser.User{
			ID:          row.PublicID,
			ClubID:      row.ClubID,
			Name:        row.Name,
			Status:      row.Status,
			PrimaryRole: fromNullString(row.PrimaryRole),
		})
	}

	return out, nil
}
