package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

type Step string

const (
	StepInitiated Step = "initiated"
	StepScanning  Step = "scanning"
	StepVerifying Step = "verifying"
	StepSuccess   Step = "success"
	StepFailed    Step = "failed"
)

// Session walks one gateway payment through
// initiated -> scanning -> verifying -> success | failed.
// A failed session can be retried, which starts over with a fresh transaction id.
type Session struct {
	sim     *Simulator
	gateway models.PaymentMethod
	amount  float64
	orderID string

	mu         sync.Mutex
	step       Step
	initiation Initiation
	bank       string
	result     Result
}

func (s *Simulator) NewSession(gateway models.PaymentMethod, amount float64, orderID string) (*Session, error) {
	in, err := s.Initiate(gateway, amount, orderID)
	if err != nil {
		return nil, err
	}
	return &Session{
		sim:        s,
		gateway:    gateway,
		amount:     amount,
		orderID:    orderID,
		step:       StepInitiated,
		initiation: in,
	}, nil
}

func (ss *Session) Step() Step {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.step
}

func (ss *Session) Initiation() Initiation {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.initiation
}

func (ss *Session) Result() Result {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.result
}

// SelectBank picks one of the ConnectIPS banks. Only valid while initiated.
func (ss *Session) SelectBank(code string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.step != StepInitiated {
		return fmt.Errorf("%w: select bank while %s", ErrInvalidTransition, ss.step)
	}
	for _, b := range ss.initiation.Banks {
		if b.Code == code {
			ss.bank = code
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBank, code)
}

func (ss *Session) advance(from, to Step) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.step != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ss.step, to)
	}
	ss.step = to
	return nil
}

// Pay simulates the customer scanning and paying, then verifies the payment.
// A cancelled context puts the session back to initiated.
func (ss *Session) Pay(ctx context.Context) (Result, error) {
	ss.mu.Lock()
	if ss.gateway == models.PaymentConnectIPS && ss.bank == "" && ss.step == StepInitiated {
		ss.mu.Unlock()
		return Result{}, ErrBankRequired
	}
	txID := ss.initiation.TransactionID
	ss.mu.Unlock()

	if err := ss.advance(StepInitiated, StepScanning); err != nil {
		return Result{}, err
	}
	if err := wait(ctx, ss.sim.scanDelay); err != nil {
		ss.reset()
		return Result{}, err
	}
	if err := ss.advance(StepScanning, StepVerifying); err != nil {
		return Result{}, err
	}

	res, err := ss.sim.VerifyPayment(ctx, txID, ss.gateway)
	if err != nil {
		ss.reset()
		return Result{}, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.result = res
	if res.Success {
		ss.step = StepSuccess
	} else {
		ss.step = StepFailed
	}
	return res, nil
}

func (ss *Session) reset() {
	ss.mu.Lock()
	ss.step = StepInitiated
	ss.mu.Unlock()
}

// Retry moves a failed session back to initiated with a new transaction id.
// The selected bank is kept.
func (ss *Session) Retry() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.step != StepFailed {
		return fmt.Errorf("%w: retry while %s", ErrInvalidTransition, ss.step)
	}
	in, err := ss.sim.Initiate(ss.gateway, ss.amount, ss.orderID)
	if err != nil {
		return err
	}
	ss.initiation = in
	ss.result = Result{}
	ss.step = StepInitiated
	return nil
}
