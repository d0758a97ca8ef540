// Package clock provides a tiny time abstraction.
//
// OTP expiry and issuance cooldowns are all wall-clock decisions, so business
// logic depends on the Clocker interface instead of calling time.Now()
// directly. Tests swap in a fixed clock to exercise TTL boundaries.
package clock
