// Package validator performs struct validation for inbound payloads and
// turns rule failures into field-keyed, human-readable messages.
//
// Business code should depend on the Validator interface so validation can
// be shared and tested consistently.
package validator

// Validator validates a struct against its declared rules.
type Validator interface {
	// Validate returns nil when data passes, or an error describing every
	// failed field.
	Validate(data any) error
}
