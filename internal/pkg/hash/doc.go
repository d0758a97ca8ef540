// Package hash wraps the credential hashing primitives behind a small
// interface so usecases stay independent of the concrete algorithm.
package hash
