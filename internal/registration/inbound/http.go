package inbound

import (
	"context"

	"github.com/mrasouli/otpreg/internal/pkg/router"
	"github.com/mrasouli/otpreg/internal/registration/usecase"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) (*usecase.RegisterResendOutput, error)

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)

	ConsumeOtpIssued(ctx context.Context, in usecase.ConsumeOtpIssuedInput) error
	ConsumeAccountVerified(ctx context.Context, in usecase.ConsumeAccountVerifiedInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Two-phase registration
	r.POST("/api/v1/registration/register", end.Register)
	r.POST("/api/v1/registration/register/verify", end.RegisterVerify)
	r.POST("/api/v1/registration/register/resend", end.RegisterResend)

	// Session (need authenticated)
	r.GET("/api/v1/registration/profile", end.Profile)
}
