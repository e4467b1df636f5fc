package mail

import (
	"context"

	"github.com/dsmirnovs/authbox/internal/logging"
)

// LogNotifier writes messages to the private log instead of sending them.
// Used in development when no SMTP host is configured.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "mail")}
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.logger.Info(ctx, "developer mode: message not sent", "to", to, "subject", subject, "body", body)
	return nil
}
