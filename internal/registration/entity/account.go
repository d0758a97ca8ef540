package entity

import "time"

// Account is a registration account keyed by mobile number. It is
// provisional until VerifiedAt is set by a successful OTP verification.
type Account struct {
	ID         int64
	Mobile     string
	FullName   string
	Password   string // bcrypt hash
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// Verified reports whether the account completed phone verification.
func (a Account) Verified() bool {
	return a.VerifiedAt != nil
}

// NewAccount carries the fields for provisioning an unverified account.
type NewAccount struct {
	ID       int64
	Mobile   string
	FullName string
	Password string // bcrypt hash
}

// RequestContext is the audit metadata captured from the inbound request and
// stamped onto every issued passcode record.
type RequestContext struct {
	IP    string
	Agent string
}
