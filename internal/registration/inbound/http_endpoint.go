package inbound

import (
	"github.com/mrasouli/otpreg/internal/pkg/router"
	"github.com/mrasouli/otpreg/internal/registration/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the two-phase registration flow.
type HTTPEndpoint struct {
	uc uc
}

// Register starts the flow: provisions the account and sends the first
// passcode over SMS.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName:             req.FullName,
		Mobile:               req.Mobile,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		IP:                   r.ClientIP(),
		Agent:                r.UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Token: resp.Token}, nil
}

// RegisterVerify completes the flow: consumes the passcode and returns a
// session token.
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Token: req.Token,
		Otp:   req.Otp,
		IP:    r.ClientIP(),
	})
	if err != nil {
		return nil, err
	}

	return RegisterVerifyResponse{AccessToken: resp.AccessToken}, nil
}

// RegisterResend issues a fresh passcode for an unverified mobile.
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	var req RegisterResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{
		Mobile: req.Mobile,
		IP:     r.ClientIP(),
		Agent:  r.UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	return RegisterResendResponse{Token: resp.Token}, nil
}

// Profile returns the authenticated account.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:         resp.ID,
		Mobile:     resp.Mobile,
		FullName:   resp.FullName,
		VerifiedAt: resp.VerifiedAt,
		CreatedAt:  resp.CreatedAt,
	}, nil
}
