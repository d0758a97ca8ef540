package smsgateway

import (
	"context"
	"io"
)

// Message represents an SMS payload.
type Message struct {
	// To is the recipient mobile number.
	To string
	// Body is the text content.
	Body string
}

// Gateway abstracts an SMS provider.
type Gateway interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
