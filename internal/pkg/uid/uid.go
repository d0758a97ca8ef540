// Package uid provides the identifier generators used across the service:
// numeric primary keys, correlation IDs, and high-entropy opaque tokens.
package uid

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
