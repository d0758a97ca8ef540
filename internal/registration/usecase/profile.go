package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/mrasouli/otpreg/internal/pkg/goerror"
	"github.com/mrasouli/otpreg/internal/pkg/jwt"
)

type ProfileOutput struct {
	ID         int64
	Mobile     string
	FullName   string
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// Profile returns the account behind the session token.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.AccountID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", clm.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		ID:         acc.ID,
		Mobile:     acc.Mobile,
		FullName:   acc.FullName,
		VerifiedAt: acc.VerifiedAt,
		CreatedAt:  acc.CreatedAt,
	}, nil
}
