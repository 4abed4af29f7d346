package mailer

import (
	"context"
	"time"

	"github.com/quizforge/quiz-api/pkg/helpers"
)

// Sender delivers a one-time passcode to a user-controlled address.
// Implementations must be synchronous fallible calls with their own timeout;
// a failed send surfaces to the caller, it is never retried here.
type Sender interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
}

// QueueSender publishes OTP email jobs to RabbitMQ; a separate worker
// (cmd/email_worker) consumes the queue and talks to Mailgun. A failed
// publish is a delivery failure from the caller's point of view.
type QueueSender struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueSender(pub *helpers.RabbitPublisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (s *QueueSender) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.Pub.PublishJSON(c, EmailJob{To: to, Code: code, TTLMinutes: int(ttl.Minutes())})
}
