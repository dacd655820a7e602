package postgres

import "time"

type fixtureTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	ClubID    string     `db:"club_public_id"`
	Opponent  string     `db:"opponent"`
	KickoffAt time.Time  `db:"kickoff_at"`
	Venue     string     `db:"venue"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
