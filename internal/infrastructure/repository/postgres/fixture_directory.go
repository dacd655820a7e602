package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/fixture"
	qb "github.com/clubops/matchday-ops/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FixtureDirectory struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewFixtureDirectory(db *sqlx.DB) *FixtureDirectory {
	return &FixtureDirectory{db: db, now: time.Now}
}

func (r *FixtureDirectory) ListUpcoming(ctx context.Context, clubID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Gte("kickoff_at", r.now().UTC()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select upcoming fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			ID:        row.PublicID,
			ClubID:    row.ClubID,
			Opponent:  row.Opponent,
			KickoffAt: row.KickoffAt,
			Venue:     row.Venue,
			Status:    row.Status,
		})
	}

	return out, nil
}
