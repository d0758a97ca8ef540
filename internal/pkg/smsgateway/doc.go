// Package smsgateway defines the contracts for sending SMS messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific SMS provider. Use cases work with the Gateway interface and
// Message payload; the concrete delivery mechanism (HTTP provider API, a
// log-only sender for development) is implemented elsewhere in this package.
package smsgateway
