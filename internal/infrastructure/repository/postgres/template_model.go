package postgres

import (
	"database/sql"
	"time"
)

type templatePackTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	ClubID           string         `db:"club_public_id"`
	Name             string         `db:"name"`
	Enabled          bool           `db:"enabled"`
	AutoApply        sql.NullString `db:"auto_apply"`
	DefaultOwnerRole sql.NullString `db:"default_owner_role"`
	Position         int            `db:"position"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

type templateTaskTableModel struct {
	ID               int64          `db:"id"`
	PackID           string         `db:"pack_public_id"`
	Label            string         `db:"label"`
	OffsetHours      sql.NullInt64  `db:"offset_hours"`
	DefaultOwnerRole sql.NullString `db:"default_owner_role"`
	Position         int            `db:"position"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}
