package postgres

import (
	"database/sql"
	"time"

	"github.com/clubops/matchday-ops/internal/domain/task"
)

type taskTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	ClubID         string         `db:"club_public_id"`
	FixtureID      string         `db:"fixture_public_id"`
	TemplatePackID sql.NullString `db:"template_pack_public_id"`
	Label          string         `db:"label"`
	SortOrder      int            `db:"sort_order"`
	IsCompleted    bool           `db:"is_completed"`
	CompletedBy    sql.NullString `db:"completed_by_public_id"`
	CompletedAt    *time.Time     `db:"completed_at"`
	OwnerUserID    sql.NullString `db:"owner_user_public_id"`
	BackupUserID   sql.NullString `db:"backup_user_public_id"`
	OwnerRole      sql.NullString `db:"owner_role"`
	DueAt          *time.Time     `db:"due_at"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

func (m taskTableModel) toDomain() task.Task {
	out := task.Task{
		ID:             m.PublicID,
		ClubID:         m.ClubID,
		FixtureID:      m.FixtureID,
		TemplatePackID: fromNullString(m.TemplatePackID),
		Label:          m.Label,
		SortOrder:      m.SortOrder,
		IsCompleted:    m.IsCompleted,
		CompletedBy:    fromNullString(m.CompletedBy),
		OwnerUserID:    fromNullString(m.OwnerUserID),
		BackupUserID:   fromNullString(m.BackupUserID),
		OwnerRole:      fromNullString(m.OwnerRole),
	}
	if m.CompletedAt != nil {
		at := *m.CompletedAt
		out.CompletedAt = &at
	}
	if m.DueAt != nil {
		due := *m.DueAt
		out.DueAt = &due
	}
	return out
}
