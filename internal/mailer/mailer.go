package mailer

import (
	"context"

	"github.com/smomoh/flagquiz/internal/logger"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers messages. The interface enables testability by allowing
// mock implementations.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. It is the
// default sender for local development, where no SMTP relay exists.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).WithPrefix("mailer").Info(
		"email (not delivered): from=%s, to=%s, subject=%q", msg.From, msg.To, msg.Subject)
	return nil
}

var _ Sender = (*LogSender)(nil)
