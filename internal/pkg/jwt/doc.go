// Package jwt issues and validates the session tokens handed out once a
// phone number has been verified.
package jwt
