package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clubops/matchday-ops/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the demo club into an empty database. Re-running
// against a populated database is a no-op.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM club_users WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count club users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO club_users (public_id, club_public_id, name, status, primary_role)
VALUES (:public_id, :club_public_id, :name, :status, :primary_role)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      u.ID,
			"club_public_id": u.ClubID,
			"name":           u.Name,
			"status":         u.Status,
			"primary_role":   toNullString(u.PrimaryRole),
		})
		if err != nil {
			return fmt.Errorf("bind seed club user %s query: %w", u.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed club user %s: %w", u.ID, err)
		}
	}

	for _, fx := range memory.SeedFixtures(time.Now()) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (public_id, club_public_id, opponent, kickoff_at, venue, status)
VALUES (:public_id, :club_public_id, :opponent, :kickoff_at, :venue, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      fx.ID,
			"club_public_id": fx.ClubID,
			"opponent":       fx.Opponent,
			"kickoff_at":     fx.KickoffAt,
			"venue":          fx.Venue,
			"status":         fx.Status,
		})
		if err != nil {
			return fmt.Errorf("bind seed fixture %s query: %w", fx.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed fixture %s: %w", fx.ID, err)
		}
	}

	for position, pack := range memory.SeedTemplatePacks() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO template_packs (public_id, club_public_id, name, enabled, auto_apply, default_owner_role, position)
VALUES (:public_id, :club_public_id, :name, :enabled, :auto_apply, :default_owner_role, :position)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":          pack.ID,
			"club_public_id":     pack.ClubID,
			"name":               pack.Name,
			"enabled":            pack.Enabled,
			"auto_apply":         toNullString(pack.AutoApply),
			"default_owner_role": toNullString(pack.DefaultOwnerRole),
			"position":           position,
		})
		if err != nil {
			return fmt.Errorf("bind seed template pack %s query: %w", pack.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed template pack %s: %w", pack.ID, err)
		}

		for taskPosition, def := range pack.Tasks {
			values := map[string]any{
				"pack_public_id":     pack.ID,
				"label":              def.Label,
				"offset_hours":       nil,
				"default_owner_role": toNullString(def.DefaultOwnerRole),
				"position":           taskPosition,
			}
			if def.OffsetHours != nil {
				values["offset_hours"] = *def.OffsetHours
			}

			sqlQuery, args, err := sqlx.Named(`
INSERT INTO template_tasks (pack_public_id, label, offset_hours, default_owner_role, position)
VALUES (:pack_public_id, :label, :offset_hours, :default_owner_role, :position)`, values)
			if err != nil {
				return fmt.Errorf("bind seed template task %s/%s query: %w", pack.ID, def.Label, err)
			}
			sqlQuery = tx.Rebind(sqlQuery)
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("seed template task %s/%s: %w", pack.ID, def.Label, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
