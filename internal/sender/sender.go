// Package sender delivers rendered notification text to individual
// recipients. Each send fails independently; there is no batch API.
package sender

import (
	"context"
	"errors"
)

// Sender delivers a single message to a single recipient.
type Sender interface {
	// Send delivers text to the recipient identified by recipientID.
	Send(ctx context.Context, recipientID, text string) error
	// GetName returns the sender's identifier (e.g., "telegram", "stdout").
	GetName() string
}

// HTTPClient abstracts HTTP operations for testability.
type HTTPClient interface {
	Do(req *HTTPRequest) (*HTTPResponse, error)
}

// HTTPRequest represents an outgoing HTTP request.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// HTTPResponse represents an HTTP response from a sender API.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

// SenderError wraps a delivery API error with classification metadata.
type SenderError struct {
	// Sender is the name of the backend that returned the error.
	Sender string
	// StatusCode is the HTTP status code from the API, when applicable.
	StatusCode int
	// Message is the error description from the API.
	Message string
}

func (e *SenderError) Error() string {
	return e.Sender + ": " + e.Message
}

// AsSenderError unwraps err into a *SenderError if possible.
func AsSenderError(err error) (*SenderError, bool) {
	var se *SenderError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
