// Package notify simulates the customer-facing channels of the shop: WhatsApp
// messages, voice announcements and the barcode scanner.
package notify

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
)

var (
	ErrClosed      = errors.New("messenger is closed")
	ErrNoRecipient = errors.New("message has no recipient")
)

const (
	defaultSendDelay    = time.Second
	defaultDeliverDelay = 2 * time.Second
	defaultReadDelay    = 5 * time.Second
	subscriberBuffer    = 64
)

// StatusEvent reports one status change of a sent message.
type StatusEvent struct {
	MessageID string               `json:"message_id"`
	Status    models.MessageStatus `json:"status"`
	At        time.Time            `json:"at"`
}

// Messenger sends simulated WhatsApp messages. After Send returns, a goroutine
// per message moves it to delivered and then read; subscribers see every step.
type Messenger struct {
	sendDelay    time.Duration
	deliverDelay time.Duration
	readDelay    time.Duration
	clock        clock.Clock
	newID        func() string
	log          MessageLog

	mu       sync.Mutex
	messages map[string]*models.Message
	subs     map[chan StatusEvent]struct{}
	closed   bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type MessengerOption func(*Messenger)

func WithDelays(send, deliver, read time.Duration) MessengerOption {
	return func(m *Messenger) {
		m.sendDelay = send
		m.deliverDelay = deliver
		m.readDelay = read
	}
}

func WithClock(c clock.Clock) MessengerOption {
	return func(m *Messenger) { m.clock = c }
}

func WithIDGenerator(f func() string) MessengerOption {
	return func(m *Messenger) { m.newID = f }
}

func WithLog(l MessageLog) MessengerOption {
	return func(m *Messenger) { m.log = l }
}

func NewMessenger(opts ...MessengerOption) *Messenger {
	m := &Messenger{
		sendDelay:    defaultSendDelay,
		deliverDelay: defaultDeliverDelay,
		readDelay:    defaultReadDelay,
		clock:        clock.NewRealClock(),
		newID:        uuid.NewString,
		log:          NewMemoryLog(),
		messages:     map[string]*models.Message{},
		subs:         map[chan StatusEvent]struct{}{},
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Log returns the log every sent message is appended to.
func (m *Messenger) Log() MessageLog {
	return m.log
}

// Send waits the send delay and returns the message with status sent.
// A message without a recipient is recorded as failed and never progresses.
func (m *Messenger) Send(ctx context.Context, to, body string, typ models.MessageType) (models.Message, error) {
	if err := sleepCtx(ctx, m.sendDelay); err != nil {
		return models.Message{}, err
	}

	msg := &models.Message{
		ID:     m.newID(),
		To:     to,
		Body:   body,
		Type:   typ,
		SentAt: m.clock.Now(),
		Status: models.MessageSent,
	}
	if to == "" {
		msg.Status = models.MessageFailed
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return models.Message{}, ErrClosed
	}
	m.messages[msg.ID] = msg
	sent := *msg
	if sent.Status == models.MessageSent {
		m.wg.Add(1)
		go m.track(msg.ID)
	}
	m.publishLocked(StatusEvent{MessageID: sent.ID, Status: sent.Status, At: sent.SentAt})
	m.mu.Unlock()

	if err := m.log.Append(ctx, sent); err != nil {
		log.Printf("⚠️ Failed to log message %s: %v", sent.ID, err)
	}

	if sent.Status == models.MessageFailed {
		log.Printf("❌ WhatsApp message %s not sent: no recipient", sent.ID)
		return sent, ErrNoRecipient
	}
	log.Printf("📱 WhatsApp message sent to %s (%s)", sent.To, sent.Type)
	return sent, nil
}

func (m *Messenger) track(id string) {
	defer m.wg.Done()

	if !m.sleep(m.deliverDelay) {
		return
	}
	m.setStatus(id, models.MessageDelivered)

	if !m.sleep(m.readDelay) {
		return
	}
	m.setStatus(id, models.MessageRead)
}

func (m *Messenger) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-m.done:
		return false
	case <-t.C:
		return true
	}
}

func (m *Messenger) setStatus(id string, status models.MessageStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.messages[id]
	if !ok {
		return
	}
	msg.Status = status
	m.publishLocked(StatusEvent{MessageID: id, Status: status, At: m.clock.Now()})
}

// publishLocked never blocks; a subscriber that falls behind misses events.
func (m *Messenger) publishLocked(ev StatusEvent) {
	for ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel of status events and a function that ends the
// subscription. The channel is closed by cancel or by Close.
func (m *Messenger) Subscribe() (<-chan StatusEvent, func()) {
	ch := make(chan StatusEvent, subscriberBuffer)

	m.mu.Lock()
	if m.closed {
		close(ch)
	} else {
		m.subs[ch] = struct{}{}
	}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (m *Messenger) Status(id string) (models.MessageStatus, bool) {
	msg, ok := m.Message(id)
	return msg.Status, ok
}

func (m *Messenger) Message(id string) (models.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.messages[id]
	if !ok {
		return models.Message{}, false
	}
	return *msg, true
}

// Close stops every pending status timer and closes all subscriptions.
func (m *Messenger) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()

		close(m.done)
		m.wg.Wait()

		m.mu.Lock()
		for ch := range m.subs {
			delete(m.subs, ch)
			close(ch)
		}
		m.mu.Unlock()
	})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
