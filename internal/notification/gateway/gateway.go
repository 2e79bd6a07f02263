// Package gateway adapts transactional-email providers to one port.
package gateway

import (
	"context"
	"errors"
	"fmt"
)

// Message is one templated email.
type Message struct {
	TemplateID       string
	RecipientAddress string
	Personalisation  map[string]string
	// Reference is echoed back by providers that support it; the notification
	// log id is used so deliveries can be traced to a row.
	Reference string
}

// Receipt is what a provider returns for an accepted message.
type Receipt struct {
	ID string
}

// Gateway sends one message. A nil error with an empty Receipt.ID is a
// failed delivery.
type Gateway interface {
	SendEmail(ctx context.Context, msg Message) (*Receipt, error)
}

// Error is a provider failure. Permanent errors are not worth retrying.
type Error struct {
	Provider   string
	StatusCode int
	Permanent  bool
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsPermanent reports whether err is a provider error that retrying cannot fix.
func IsPermanent(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Permanent
}

// permanentStatus reports whether an HTTP status from a provider means the
// request itself is wrong.
func permanentStatus(code int) bool {
	switch code {
	case 400, 401, 403, 404, 422:
		return true
	}
	return false
}

func statusError(provider string, code int, err error) *Error {
	return &Error{Provider: provider, StatusCode: code, Permanent: permanentStatus(code), Err: err}
}
