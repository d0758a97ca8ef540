package entity

import (
	"errors"
	"time"
)

var (
	// ErrOtpNotFound means no live passcode record matches: the token is
	// unknown, the record was already consumed or expired, or the TTL has
	// elapsed.
	ErrOtpNotFound = errors.New("registration: otp not found")

	// ErrOtpMismatch means a live record was found but the submitted code
	// differs from the stored one. The record stays live.
	ErrOtpMismatch = errors.New("registration: otp mismatch")
)

// OtpRecord is one issued passcode. Records are never deleted; they reach a
// terminal state through UsedAt (consumed) or Expired (invalidated).
type OtpRecord struct {
	ID          int64
	AccountID   int64
	Code        string // 6-digit numeric secret
	Token       string // 60-char opaque correlation string
	Purpose     OtpPurpose
	Destination Destination
	Channel     OtpChannel
	IP          string
	Agent       string
	CreatedAt   time.Time
	UsedAt      *time.Time
	Expired     bool
}

// Live reports whether the record can still be consumed at now given ttl.
func (r OtpRecord) Live(now time.Time, ttl time.Duration) bool {
	return r.UsedAt == nil && !r.Expired && !now.After(r.CreatedAt.Add(ttl))
}

// IssuedOtp is what Issue hands back to its caller: the persisted record
// plus a delivery error, which is reported rather than failing issuance.
type IssuedOtp struct {
	Record      *OtpRecord
	DeliveryErr error
}

// ConsumeOtp carries the fields for the conditional consume update.
type ConsumeOtp struct {
	RecordID  int64
	AccountID int64
	UsedAt    time.Time
}
