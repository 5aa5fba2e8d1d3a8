package payment

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newSimulator(roller Roller) *Simulator {
	return NewSimulator(
		WithDelays(0, 0, 0),
		WithRoller(roller),
		WithClock(clock.NewMockClock(start)),
	)
}

func TestInitiate_Gateways(t *testing.T) {
	sim := newSimulator(AlwaysSucceed)
	ms := strconv.FormatInt(start.UnixMilli(), 10)
	digits := ms[len(ms)-10:]

	tests := []struct {
		gateway  models.PaymentMethod
		prefix   string
		merchant string
		qr       bool
		banks    int
	}{
		{models.PaymentEsewa, "ESW", "KIRANA123", true, 0},
		{models.PaymentKhalti, "KHT", "KRN456", true, 0},
		{models.PaymentFonepay, "FPY", "KIRANA_FPY", true, 0},
		{models.PaymentConnectIPS, "CIPS", "KIRANA789", false, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.gateway), func(t *testing.T) {
			in, err := sim.Initiate(tt.gateway, 339, "order-1")
			require.NoError(t, err)

			assert.Equal(t, tt.gateway, in.Gateway)
			assert.Equal(t, "order-1", in.OrderID)
			assert.Equal(t, 339.0, in.Amount)
			assert.Equal(t, tt.merchant, in.MerchantID)
			assert.Regexp(t, regexp.MustCompile("^"+tt.prefix+digits+"[0-9A-Z]{6}$"), in.TransactionID)
			assert.Positive(t, in.ExpiresIn)
			assert.Equal(t, tt.qr, in.QRData != "")
			assert.Len(t, in.Banks, tt.banks)
			if tt.qr {
				assert.Contains(t, in.QRData, in.TransactionID)
			}
		})
	}
}

func TestInitiate_UnknownGateway(t *testing.T) {
	sim := newSimulator(AlwaysSucceed)
	_, err := sim.Initiate(models.PaymentCash, 10, "o")
	assert.ErrorIs(t, err, ErrUnknownGateway)
}

func TestInitiate_FreshTransactionIDs(t *testing.T) {
	sim := newSimulator(AlwaysSucceed)
	seen := map[string]bool{}
	for range 50 {
		seen[sim.InitiateEsewa(1, "o").TransactionID] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()

	ok, err := newSimulator(AlwaysSucceed).VerifyPayment(ctx, "ESW1", models.PaymentEsewa)
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.Equal(t, "ESW1", ok.TransactionID)
	assert.Equal(t, "Payment verified via eSewa", ok.Message)

	failed, err := newSimulator(AlwaysFail).VerifyPayment(ctx, "ESW2", models.PaymentEsewa)
	require.NoError(t, err)
	assert.False(t, failed.Success)
}

func TestVerifyPayment_SuccessRate(t *testing.T) {
	roll := 0.5
	sim := NewSimulator(WithDelays(0, 0, 0), WithRoller(func() float64 { return roll }), WithSuccessRate(0.6))

	res, err := sim.VerifyPayment(context.Background(), "x", models.PaymentKhalti)
	require.NoError(t, err)
	assert.True(t, res.Success)

	roll = 0.6
	res, err = sim.VerifyPayment(context.Background(), "x", models.PaymentKhalti)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestVerifyPayment_Cancelled(t *testing.T) {
	sim := NewSimulator(WithDelays(time.Hour, 0, 0), WithRoller(AlwaysSucceed))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sim.VerifyPayment(ctx, "x", models.PaymentEsewa)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProcessPayment(t *testing.T) {
	res, err := newSimulator(AlwaysSucceed).ProcessPayment(context.Background(), 250, models.PaymentKhalti)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Regexp(t, `^TXN\d{13}[0-9A-Z]{9}$`, res.TransactionID)
	assert.Equal(t, "Payment of Rs 250.00 successful via KHALTI", res.Message)

	res, err = newSimulator(AlwaysFail).ProcessPayment(context.Background(), 250, models.PaymentKhalti)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.TransactionID)
}

func TestRefund(t *testing.T) {
	ok, err := newSimulator(AlwaysFail).Refund(context.Background(), "ESW1", 100)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInstructions(t *testing.T) {
	assert.Contains(t, Instructions("esewa", 100), "Merchant ID: KIRANA123")
	assert.Contains(t, Instructions("khalti", 100), "Merchant Code: KRN456")
	assert.Contains(t, Instructions("connectips", 100), "Merchant ID: KIRANA789")
	assert.Contains(t, Instructions("bank", 100), "Account No: 0123456789")
	assert.Contains(t, Instructions("fonepay", 42.5), "Rs 42.50")
	assert.Equal(t, "Payment instructions not available", Instructions("cash", 1))
}

func TestSession_HappyPath(t *testing.T) {
	sim := newSimulator(AlwaysSucceed)
	s, err := sim.NewSession(models.PaymentEsewa, 339, "order-1")
	require.NoError(t, err)
	assert.Equal(t, StepInitiated, s.Step())

	res, err := s.Pay(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, s.Initiation().TransactionID, res.TransactionID)
	assert.Equal(t, StepSuccess, s.Step())

	_, err = s.Pay(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, s.Retry(), ErrInvalidTransition)
}

func TestSession_FailThenRetry(t *testing.T) {
	roll := 1.0
	sim := NewSimulator(WithDelays(0, 0, 0), WithRoller(func() float64 { return roll }))
	s, err := sim.NewSession(models.PaymentKhalti, 100, "order-2")
	require.NoError(t, err)

	res, err := s.Pay(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, StepFailed, s.Step())

	first := s.Initiation().TransactionID
	require.NoError(t, s.Retry())
	assert.Equal(t, StepInitiated, s.Step())
	assert.NotEqual(t, first, s.Initiation().TransactionID)
	assert.Empty(t, s.Result().TransactionID)

	roll = 0
	res, err = s.Pay(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, StepSuccess, s.Step())
}

func TestSession_ConnectIPSRequiresBank(t *testing.T) {
	sim := newSimulator(AlwaysSucceed)
	s, err := sim.NewSession(models.PaymentConnectIPS, 500, "order-3")
	require.NoError(t, err)

	_, err = s.Pay(context.Background())
	assert.ErrorIs(t, err, ErrBankRequired)
	assert.Equal(t, StepInitiated, s.Step())

	assert.ErrorIs(t, s.SelectBank("XYZ"), ErrUnknownBank)
	require.NoError(t, s.SelectBank("NABIL"))

	res, err := s.Pay(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.ErrorIs(t, s.SelectBank("NBL"), ErrInvalidTransition)
}

func TestSession_CancelledScanResets(t *testing.T) {
	sim := NewSimulator(WithDelays(0, time.Hour, 0), WithRoller(AlwaysSucceed))
	s, err := sim.NewSession(models.PaymentFonepay, 10, "order-4")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Pay(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return s.Step() == StepScanning }, time.Second, time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, StepInitiated, s.Step())
}
