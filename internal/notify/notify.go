// Package notify delivers transactional messages to members and trainers.
package notify

import (
	"context"
	"log/slog"
)

// Kind selects the template a message is rendered with.
type Kind string

const (
	KindTrainerAccepted Kind = "trainer_accepted"
	KindTrainerRejected Kind = "trainer_rejected"
	KindSlotCancelled   Kind = "slot_cancelled"
)

// Data is the template context of a message.
type Data struct {
	ReceiverName string
	Trainer      string
	Slot         string
	Body         string
}

// Message is one notification addressed to one or more recipients.
type Message struct {
	To      []string
	Subject string
	Kind    Kind
	Data    Data
}

// Gateway sends messages. Callers treat delivery as best effort.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}

// LogGateway writes messages to the structured log instead of delivering them.
// Used when no SMTP server is configured.
type LogGateway struct{}

func (LogGateway) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "notification",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"trainer", msg.Data.Trainer,
		"slot", msg.Data.Slot,
	)
	return nil
}
