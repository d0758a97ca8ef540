package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/registration/entity"
)

const selectOtpColumns = `id, account_id, code, token, purpose, destination,
	channel, ip, agent, created_at, used_at, expired`

func scanOtp(row pgx.Row) (*entity.OtpRecord, error) {
	var rec entity.OtpRecord
	var destination string
	err := row.Scan(&rec.ID, &rec.AccountID, &rec.Code, &rec.Token, &rec.Purpose,
		&destination, &rec.Channel, &rec.IP, &rec.Agent, &rec.CreatedAt,
		&rec.UsedAt, &rec.Expired)
	if err != nil {
		return nil, err
	}
	rec.Destination = entity.DestinationFromString(destination)
	return &rec, nil
}

// GetLatestOtpByAccount returns the most recently issued record for the
// account and purpose, live or not. Used by the issuance cooldown check.
func (s *DB) GetLatestOtpByAccount(ctx context.Context, accountID int64, purpose entity.OtpPurpose) (rec *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestOtpByAccount")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+selectOtpColumns+`
		 FROM registration_otps
		 WHERE account_id = @account_id AND purpose = @purpose
		 ORDER BY created_at DESC
		 LIMIT 1`,
		pgx.NamedArgs{"account_id": accountID, "purpose": purpose},
	)

	rec, err = scanOtp(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return rec, nil
}

// GetLiveOtpByToken returns the record for the token only while it is
// consumable: unused, not force-expired, and younger than ttl. Expiry is
// enforced lazily here rather than by a sweeper.
func (s *DB) GetLiveOtpByToken(ctx context.Context, token string, ttl time.Duration) (rec *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetLiveOtpByToken")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+selectOtpColumns+`
		 FROM registration_otps
		 WHERE token = @token
		   AND used_at IS NULL
		   AND expired = false
		   AND created_at > now() - @ttl::interval`,
		pgx.NamedArgs{"token": token, "ttl": ttl},
	)

	rec, err = scanOtp(row)
	if err != nil {
		return nil, s.mapError(err)
	}
	return rec, nil
}

// ExpireOtp marks a single record as force-expired. Consumed records are
// left alone; their terminal state is already recorded.
func (s *DB) ExpireOtp(ctx context.Context, recordID int64) (err error) {
	ctx, span := s.startSpan(ctx, "ExpireOtp")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE registration_otps
		 SET expired = true
		 WHERE id = @id AND used_at IS NULL`,
		pgx.NamedArgs{"id": recordID},
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
