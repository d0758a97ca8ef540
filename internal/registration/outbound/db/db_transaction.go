package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

// NewOtpIssuance force-expires every live record for the account and purpose
// and inserts the fresh one, in a single transaction. At most one live code
// exists per account at any instant.
func (s *DB) NewOtpIssuance(ctx context.Context, rec entity.OtpRecord) (err error) {
	ctx, span := s.startSpan(ctx, "NewOtpIssuance")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx,
		`UPDATE registration_otps
		 SET expired = true
		 WHERE account_id = @account_id
		   AND purpose = @purpose
		   AND used_at IS NULL
		   AND expired = false`,
		pgx.NamedArgs{"account_id": rec.AccountID, "purpose": rec.Purpose},
	); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO registration_otps
		 (id, account_id, code, token, purpose, destination, channel, ip, agent, created_at)
		 VALUES (@id, @account_id, @code, @token, @purpose, @destination, @channel, @ip, @agent, @created_at)`,
		pgx.NamedArgs{
			"id":          rec.ID,
			"account_id":  rec.AccountID,
			"code":        rec.Code,
			"token":       rec.Token,
			"purpose":     rec.Purpose,
			"destination": rec.Destination.String(),
			"channel":     rec.Channel,
			"ip":          rec.IP,
			"agent":       rec.Agent,
			"created_at":  rec.CreatedAt,
		},
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// ConsumeOtp consumes a record and verifies its account in one transaction.
// The consume is a conditional update; when two callers race, exactly one
// sees a row change and the loser gets goerror.ErrNotFound. The account's
// verified_at is set only on its first verification.
func (s *DB) ConsumeOtp(ctx context.Context, in entity.ConsumeOtp) (err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOtp")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE registration_otps
		 SET used_at = @used_at, expired = true
		 WHERE id = @id
		   AND used_at IS NULL
		   AND expired = false`,
		pgx.NamedArgs{"id": in.RecordID, "used_at": in.UsedAt},
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if _, err = tx.Exec(ctx,
		`UPDATE registration_accounts
		 SET verified_at = @verified_at
		 WHERE id = @id AND verified_at IS NULL`,
		pgx.NamedArgs{"id": in.AccountID, "verified_at": in.UsedAt},
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
