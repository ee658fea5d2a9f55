package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrTransientMail marks a delivery failure worth retrying later.
var ErrTransientMail = errors.New("transient mail delivery failure")

// MailMessage is a plain-text email.
type MailMessage struct {
	To      string
	Subject string
	Body    string

	// RequestID ties the delivery log back to the request that queued it.
	RequestID string
}

// Mailer delivers one message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailDispatcher queues a message for best-effort delivery and never blocks
// the caller on I/O. Delivery failures are logged, not returned.
type MailDispatcher interface {
	Dispatch(msg MailMessage)
}
