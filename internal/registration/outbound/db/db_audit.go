package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

// CreateAuditLog appends an audit trail entry.
func (s *DB) CreateAuditLog(ctx context.Context, in entity.AuditLog) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAuditLog")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO registration_audit_logs (id, account_id, event, detail, created_at)
		VALUES (@id, @account_id, @event, @detail, @created_at)
	`
	args := pgx.NamedArgs{
		"id":         in.ID,
		"account_id": in.AccountID,
		"event":      in.Event,
		"detail":     in.Detail,
		"created_at": in.CreatedAt,
	}

	if _, err = s.conn.Exec(ctx, query, args); err != nil {
		return s.mapError(err)
	}

	return nil
}
