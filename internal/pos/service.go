// Package pos runs a sale at the counter: it takes a cart through payment,
// records the order and stock movement, and notifies the customer.
package pos

import (
	"github.com/google/uuid"
	"github.com/rogerio-castellano/kirana-pos/internal/forecast"
	"github.com/rogerio-castellano/kirana-pos/internal/notify"
	"github.com/rogerio-castellano/kirana-pos/internal/payment"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
	"github.com/rogerio-castellano/kirana-pos/internal/repo"
)

// Store is the persistence the counter needs.
type Store interface {
	repo.ProductRepository
	repo.OrderRepository
	repo.CustomerRepository
}

type Service struct {
	store      Store
	payments   *payment.Simulator
	messenger  *notify.Messenger
	voice      *notify.Voice
	scanner    *notify.Scanner
	forecaster *forecast.Forecaster
	taxRate    float64
	clock      clock.Clock
	newID      func() string
}

type Option func(*Service)

func WithPayments(p *payment.Simulator) Option {
	return func(s *Service) { s.payments = p }
}

func WithMessenger(m *notify.Messenger) Option {
	return func(s *Service) { s.messenger = m }
}

func WithVoice(v *notify.Voice) Option {
	return func(s *Service) { s.voice = v }
}

func WithScanner(sc *notify.Scanner) Option {
	return func(s *Service) { s.scanner = sc }
}

func WithForecaster(f *forecast.Forecaster) Option {
	return func(s *Service) { s.forecaster = f }
}

func WithTaxRate(rate float64) Option {
	return func(s *Service) { s.taxRate = rate }
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService fills every collaborator not given as an option with its default.
// The Service owns the messenger; Close stops it.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		taxRate: DefaultTaxRate,
		clock:   clock.NewRealClock(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.payments == nil {
		s.payments = payment.NewSimulator(payment.WithClock(s.clock))
	}
	if s.messenger == nil {
		s.messenger = notify.NewMessenger(notify.WithClock(s.clock))
	}
	if s.voice == nil {
		s.voice = notify.NewVoice(nil, s.clock)
	}
	if s.scanner == nil {
		s.scanner = notify.NewScanner(0)
	}
	if s.forecaster == nil {
		s.forecaster = forecast.New(forecast.DefaultPolicy(), s.clock)
	}
	return s
}

func (s *Service) NewCart() *Cart {
	return NewCart(s.taxRate)
}

func (s *Service) Payments() *payment.Simulator {
	return s.payments
}

func (s *Service) Messenger() *notify.Messenger {
	return s.messenger
}

func (s *Service) Forecaster() *forecast.Forecaster {
	return s.forecaster
}

func (s *Service) Close() {
	s.messenger.Close()
}
