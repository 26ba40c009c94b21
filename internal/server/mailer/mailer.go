// Package mailer delivers transactional e-mail. Production uses Resend;
// development logs messages instead of sending them.
package mailer

import (
	"context"
	"fmt"

	"github.com/eulark/eulark/internal/common"
	"github.com/eulark/eulark/internal/logging"
	"github.com/resend/resend-go/v2"
	"github.com/samber/oops"
)

// Message is a single outgoing HTML e-mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(ctx context.Context, req *resend.SendEmailRequest) error

// ResendSender sends through the Resend HTTP API.
type ResendSender struct {
	from string
	send sendFunc
}

func NewResendSender(apiKey, from string) *ResendSender {
	client := resend.NewClient(apiKey)
	return &ResendSender{
		from: from,
		send: func(ctx context.Context, req *resend.SendEmailRequest) error {
			_, err := client.Emails.SendWithContext(ctx, req)
			return err
		},
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	err := s.send(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return oops.
			Code("MAIL_SEND_FAILED").
			With("to", msg.To, "subject", msg.Subject).
			Wrap(fmt.Errorf("%w: %w", common.ErrMailDelivery, err))
	}
	return nil
}

// LogSender writes messages to the log. Used when no API key is configured.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info(ctx, "mail not sent, no provider configured", "to", msg.To, "subject", msg.Subject)
	s.log.Debug(ctx, "mail body", "to", msg.To, "html", msg.HTML)
	return nil
}

// New picks the Resend sender when apiKey is set and the log sender otherwise.
func New(apiKey, from string, log logging.Logger) Sender {
	if apiKey == "" {
		return NewLogSender(log)
	}
	return NewResendSender(apiKey, from)
}
