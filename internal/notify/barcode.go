package notify

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

// SampleBarcodes are the codes printed on the seeded rice and cooking oil.
var SampleBarcodes = []string{"8901234567890", "8901234567891"}

func IsValidBarcode(code string) bool {
	return models.IsValidBarcode(code)
}

// Scanner stands in for the counter's barcode reader.
type Scanner struct {
	delay time.Duration
	codes []string
}

// NewScanner returns a scanner that reads one of codes, or of SampleBarcodes
// when none are given, after delay.
func NewScanner(delay time.Duration, codes ...string) *Scanner {
	if len(codes) == 0 {
		codes = SampleBarcodes
	}
	return &Scanner{delay: delay, codes: codes}
}

func (s *Scanner) Scan(ctx context.Context) (string, error) {
	if err := sleepCtx(ctx, s.delay); err != nil {
		return "", err
	}
	return s.codes[rand.IntN(len(s.codes))], nil
}
