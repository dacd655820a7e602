package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/clubops/matchday-ops/internal/domain/audit"
	qb "github.com/clubops/matchday-ops/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type AuditSink struct {
	db *sqlx.DB
}

func NewAuditSink(db *sqlx.DB) *AuditSink {
	return &AuditSink{db: db}
}

func (r *AuditSink) Append(ctx context.Context, event audit.Event) error {
	payload, err := sonic.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query, args, err := qb.InsertInto("audit_events").
		Columns("club_public_id", "actor_public_id", "action", "payload", "recorded_at").
		Values(event.ClubID, toNullString(event.ActorID), event.Action, payload, event.RecordedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert audit event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	return nil
}
