package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/asistecare/siteapi/internal/common"
)

const (
	contactTemplate = "contact_notification.html"
	reviewTemplate  = "review_notification.html"

	maxRetries = 5
	baseDelay  = 500 * time.Millisecond
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, recipient string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		recipient: recipient,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SendLeadNotifications starts the consumers for contact and review events.
// Each consumer runs on its own goroutine until the service is closed.
func (s *MailService) SendLeadNotifications() {
	s.consume(common.ContactCreatedKey, common.ContactCreatedQueue, contactTemplate)
	s.consume(common.ReviewCreatedKey, common.ReviewCreatedQueue, reviewTemplate)
}

func (s *MailService) consume(key common.BindingKey, queue common.Queue, templateFile string) {
	msgs, err := s.mb.Consume(key, common.LeadExchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data map[string]any
				if err := json.Unmarshal(msg.Body, &data); err != nil {
					s.logger.Error("could not unmarshal message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
					s.ack(msg, queue)
					continue
				}

				s.sendWithRetry(data, templateFile)
				s.ack(msg, queue)

			case <-s.ctx.Done():
				s.logger.Info("stopping lead notification consumer", slog.String("queue", string(queue)))
				return
			}
		}
	}()
}

// ack acknowledges a delivery. A failing ack means the channel is broken and
// the message will be redelivered, so it has to show up in the logs.
func (s *MailService) ack(msg amqp.Delivery, queue common.Queue) {
	if err := msg.Ack(false); err != nil {
		s.logger.Error("could not ack message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
	}
}

// sendWithRetry delivers one notification using exponential backoff with
// jitter. Giving up is terminal: the lead itself is already persisted.
func (s *MailService) sendWithRetry(data any, templateFile string) {
	var attempt int
	for attempt = 0; attempt < maxRetries; attempt++ {
		err := s.m.send(s.recipient, data, templateFile)
		if err == nil {
			s.logger.Info("lead notification sent", slog.String("template", templateFile))
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying lead notification", slog.String("template", templateFile), slog.Int("attempt", attempt), slog.Duration("delay", delay))
		time.Sleep(delay)
	}

	s.logger.Error("could not send lead notification", slog.String("template", templateFile))
}

func (s *MailService) Close() {
	s.cancel()
}
