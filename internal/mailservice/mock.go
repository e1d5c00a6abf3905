package mailservice

import (
	"bytes"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/asistecare/siteapi/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mu        sync.Mutex
	called    bool
	recipient string
	templates []string
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.called = true
	m.recipient = recipient
	m.templates = append(m.templates, templateFile)
	return nil
}

// Sent reports whether send was called, together with the recipient and the
// templates used so far.
func (m *MockMailer) Sent() (bool, string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.called, m.recipient, append([]string(nil), m.templates...)
}

// MockMessageConsumer delivers a single canned lead event per Consume call.
type MockMessageConsumer struct {
	Body []byte
	mock.Mock
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)

		body := m.Body
		if body == nil {
			body = []byte(`{"name": "Test Lead", "email": "lead@example.com"}`)
		}
		msgsChan <- amqp.Delivery{Body: body}
	}()

	return msgsChan, nil
}
