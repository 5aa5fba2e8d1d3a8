// Package payment simulates the Nepali payment gateways used at the counter.
// Nothing here talks to a real provider: initiation fabricates a payload,
// verification waits and rolls against a success rate.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
)

var (
	ErrUnknownGateway    = errors.New("unknown payment gateway")
	ErrBankRequired      = errors.New("a bank must be selected for ConnectIPS")
	ErrUnknownBank       = errors.New("unknown bank")
	ErrInvalidTransition = errors.New("invalid payment session transition")
)

const (
	defaultSuccessRate = 0.95
	defaultVerifyDelay = 2 * time.Second
	defaultScanDelay   = 3 * time.Second
	defaultRefundDelay = 1500 * time.Millisecond
)

type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ConnectIPSBanks is the bank list offered with a ConnectIPS initiation.
var ConnectIPSBanks = []Bank{
	{Code: "NBL", Name: "Nepal Bank Limited"},
	{Code: "NABIL", Name: "Nabil Bank"},
	{Code: "NICA", Name: "NIC Asia Bank"},
	{Code: "GIBL", Name: "Global IME Bank"},
	{Code: "HBL", Name: "Himalayan Bank"},
}

type gatewayProfile struct {
	name       string
	prefix     string
	merchantID string
	expiresIn  int
	qrScheme   string
}

var gateways = map[models.PaymentMethod]gatewayProfile{
	models.PaymentEsewa:      {name: "eSewa", prefix: "ESW", merchantID: "KIRANA123", expiresIn: 300, qrScheme: "esewa"},
	models.PaymentKhalti:     {name: "Khalti", prefix: "KHT", merchantID: "KRN456", expiresIn: 1800, qrScheme: "khalti"},
	models.PaymentFonepay:    {name: "Fonepay", prefix: "FPY", merchantID: "KIRANA_FPY", expiresIn: 300, qrScheme: "fonepay"},
	models.PaymentConnectIPS: {name: "ConnectIPS", prefix: "CIPS", merchantID: "KIRANA789", expiresIn: 600},
}

// Initiation is the payload a gateway hands back before the customer pays.
// ExpiresIn is informational and never enforced.
type Initiation struct {
	Gateway       models.PaymentMethod `json:"gateway"`
	OrderID       string               `json:"order_id"`
	Amount        float64              `json:"amount"`
	MerchantID    string               `json:"merchant_id"`
	TransactionID string               `json:"transaction_id"`
	QRData        string               `json:"qr_data,omitempty"`
	ExpiresIn     int                  `json:"expires_in"`
	Banks         []Bank               `json:"banks,omitempty"`
}

type Result struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// Roller returns a number in [0, 1); a payment succeeds when the roll is
// below the success rate.
type Roller func() float64

type Simulator struct {
	successRate float64
	verifyDelay time.Duration
	scanDelay   time.Duration
	refundDelay time.Duration
	roll        Roller
	clock       clock.Clock
}

type Option func(*Simulator)

func WithSuccessRate(rate float64) Option {
	return func(s *Simulator) { s.successRate = rate }
}

// WithDelays sets the simulated latencies. Zero disables a wait.
func WithDelays(verify, scan, refund time.Duration) Option {
	return func(s *Simulator) {
		s.verifyDelay = verify
		s.scanDelay = scan
		s.refundDelay = refund
	}
}

func WithRoller(r Roller) Option {
	return func(s *Simulator) { s.roll = r }
}

func WithClock(c clock.Clock) Option {
	return func(s *Simulator) { s.clock = c }
}

// AlwaysSucceed and AlwaysFail force the outcome of every verification.
func AlwaysSucceed() float64 { return 0 }
func AlwaysFail() float64    { return 1 }

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		successRate: defaultSuccessRate,
		verifyDelay: defaultVerifyDelay,
		scanDelay:   defaultScanDelay,
		refundDelay: defaultRefundDelay,
		roll:        rand.Float64,
		clock:       clock.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GatewayName returns the display name of a gateway, or the raw method.
func GatewayName(m models.PaymentMethod) string {
	if g, ok := gateways[m]; ok {
		return g.name
	}
	return strings.ToUpper(string(m))
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomBase36(n int) string {
	var b strings.Builder
	for range n {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}

// transactionID is prefix + the last ten digits of the unix millisecond clock
// + six random base36 characters.
func (s *Simulator) transactionID(prefix string) string {
	ms := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	if len(ms) > 10 {
		ms = ms[len(ms)-10:]
	}
	return prefix + ms + randomBase36(6)
}

func (s *Simulator) Initiate(gateway models.PaymentMethod, amount float64, orderID string) (Initiation, error) {
	switch gateway {
	case models.PaymentEsewa:
		return s.InitiateEsewa(amount, orderID), nil
	case models.PaymentKhalti:
		return s.InitiateKhalti(amount, orderID), nil
	case models.PaymentFonepay:
		return s.InitiateFonepay(amount, orderID), nil
	case models.PaymentConnectIPS:
		return s.InitiateConnectIPS(amount, orderID), nil
	}
	return Initiation{}, fmt.Errorf("%w: %q", ErrUnknownGateway, gateway)
}

func (s *Simulator) initiate(gateway models.PaymentMethod, amount float64, orderID string) Initiation {
	g := gateways[gateway]
	in := Initiation{
		Gateway:       gateway,
		OrderID:       orderID,
		Amount:        amount,
		MerchantID:    g.merchantID,
		TransactionID: s.transactionID(g.prefix),
		ExpiresIn:     g.expiresIn,
	}
	if g.qrScheme != "" {
		in.QRData = fmt.Sprintf("%s://pay?merchant=%s&amount=%.2f&txn=%s&ref=%s",
			g.qrScheme, g.merchantID, amount, in.TransactionID, orderID)
	}
	log.Printf("💳 %s payment initiated: %s for order %s (Rs %.2f)", g.name, in.TransactionID, orderID, amount)
	return in
}

func (s *Simulator) InitiateEsewa(amount float64, orderID string) Initiation {
	return s.initiate(models.PaymentEsewa, amount, orderID)
}

func (s *Simulator) InitiateKhalti(amount float64, orderID string) Initiation {
	return s.initiate(models.PaymentKhalti, amount, orderID)
}

func (s *Simulator) InitiateFonepay(amount float64, orderID string) Initiation {
	return s.initiate(models.PaymentFonepay, amount, orderID)
}

func (s *Simulator) InitiateConnectIPS(amount float64, orderID string) Initiation {
	in := s.initiate(models.PaymentConnectIPS, amount, orderID)
	in.Banks = append([]Bank(nil), ConnectIPSBanks...)
	return in
}

func (s *Simulator) succeeded() bool {
	return s.roll() < s.successRate
}

// VerifyPayment waits the verification delay and then rolls the outcome.
// The only error is the context's.
func (s *Simulator) VerifyPayment(ctx context.Context, transactionID string, gateway models.PaymentMethod) (Result, error) {
	if err := wait(ctx, s.verifyDelay); err != nil {
		return Result{}, err
	}

	if !s.succeeded() {
		log.Printf("❌ %s verification failed for %s", GatewayName(gateway), transactionID)
		return Result{
			TransactionID: transactionID,
			Message:       "Payment verification failed. Please try again.",
		}, nil
	}

	log.Printf("✅ %s payment verified: %s", GatewayName(gateway), transactionID)
	return Result{
		Success:       true,
		TransactionID: transactionID,
		Message:       fmt.Sprintf("Payment verified via %s", GatewayName(gateway)),
	}, nil
}

// ProcessPayment is the one-shot flow: no initiation payload, a TXN
// transaction id on success and an empty one on failure.
func (s *Simulator) ProcessPayment(ctx context.Context, amount float64, method models.PaymentMethod) (Result, error) {
	if err := wait(ctx, s.verifyDelay); err != nil {
		return Result{}, err
	}
	if !s.succeeded() {
		return Result{Message: "Payment failed. Please try again."}, nil
	}
	return Result{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN%d%s", s.clock.Now().UnixMilli(), randomBase36(9)),
		Message:       fmt.Sprintf("Payment of Rs %.2f successful via %s", amount, strings.ToUpper(string(method))),
	}, nil
}

// Refund always succeeds once the refund delay has passed.
func (s *Simulator) Refund(ctx context.Context, transactionID string, amount float64) (bool, error) {
	if err := wait(ctx, s.refundDelay); err != nil {
		return false, err
	}
	log.Printf("↩️ Refund processed: %s - Rs %.2f", transactionID, amount)
	return true, nil
}

func wait(ctx context.Context, d time.Duration) error {
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
