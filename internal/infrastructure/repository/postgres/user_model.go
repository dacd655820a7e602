package postgres

import (
	"database/sql"
	"time"
)

type clubUserTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	ClubID      string         `db:"club_public_id"`
	Name        string         `db:"name"`
	Status      string         `db:"status"`
	PrimaryRole sql.NullString `db:"primary_role"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}
