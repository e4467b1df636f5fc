// Package mail delivers outbound messages for the service. The only message
// in scope is the password-reset code.
package mail

import "context"

// Notifier sends a message to a single recipient. Delivery is at-most-once:
// nothing in the service retries a failed send.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
