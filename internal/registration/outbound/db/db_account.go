package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

const selectAccountColumns = `id, mobile, full_name, password, verified_at, created_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var acc entity.Account
	err := row.Scan(&acc.ID, &acc.Mobile, &acc.FullName, &acc.Password, &acc.VerifiedAt, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *DB) GetAccountByMobile(ctx context.Context, mobile string) (acc *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByMobile")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+selectAccountColumns+` FROM registration_accounts WHERE mobile = @mobile`,
		pgx.NamedArgs{"mobile": mobile},
	)

	acc, err = scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return acc, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (acc *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+selectAccountColumns+` FROM registration_accounts WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)

	acc, err = scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return acc, nil
}

// FindOrCreateAccount inserts the unverified account unless one already
// exists for the mobile, then returns the canonical row either way. The
// conditional insert and the fetch run in one transaction so two racing
// registrations converge on the same account.
func (s *DB) FindOrCreateAccount(ctx context.Context, in entity.NewAccount) (acc *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "FindOrCreateAccount")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx,
		`INSERT INTO registration_accounts (id, mobile, full_name, password)
		 VALUES (@id, @mobile, @full_name, @password)
		 ON CONFLICT (mobile) DO NOTHING`,
		pgx.NamedArgs{
			"id":        in.ID,
			"mobile":    in.Mobile,
			"full_name": in.FullName,
			"password":  in.Password,
		},
	); err != nil {
		return nil, s.mapError(err)
	}

	row := tx.QueryRow(ctx,
		`SELECT `+selectAccountColumns+` FROM registration_accounts WHERE mobile = @mobile`,
		pgx.NamedArgs{"mobile": in.Mobile},
	)
	acc, err = scanAccount(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}
