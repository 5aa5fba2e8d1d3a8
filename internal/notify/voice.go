package notify

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
)

type Language string

const (
	Nepali  Language = "nepali"
	English Language = "english"
)

type Announcement struct {
	Message  string    `json:"message"`
	Language Language  `json:"language"`
	At       time.Time `json:"at"`
}

// Announcer plays an announcement on whatever speaker the counter has.
type Announcer interface {
	Announce(a Announcement)
}

// LogAnnouncer writes announcements to the process log.
type LogAnnouncer struct{}

func (LogAnnouncer) Announce(a Announcement) {
	log.Printf("🔊 Voice Alert (%s): %s", a.Language, a.Message)
}

type Voice struct {
	announcer Announcer
	clock     clock.Clock
}

func NewVoice(a Announcer, c clock.Clock) *Voice {
	if a == nil {
		a = LogAnnouncer{}
	}
	if c == nil {
		c = clock.NewRealClock()
	}
	return &Voice{announcer: a, clock: c}
}

// PlayAlert announces message in lang. Delivery is never confirmed.
func (v *Voice) PlayAlert(message string, lang Language) {
	if lang == "" {
		lang = Nepali
	}
	v.announcer.Announce(Announcement{Message: message, Language: lang, At: v.clock.Now()})
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func FormatPaymentAlert(method string, value float64, lang Language) string {
	if lang == English {
		return fmt.Sprintf("Payment of Rs %s received via %s", amount(value), method)
	}
	return fmt.Sprintf("%s बाट रु %s भुक्तानी प्राप्त भयो", method, amount(value))
}

func FormatStockAlert(productName string, stock int, lang Language) string {
	if lang == English {
		return fmt.Sprintf("Alert! %s stock is low. Remaining: %d", productName, stock)
	}
	return fmt.Sprintf("सावधान! %s को स्टक कम छ। बाँकी: %d", productName, stock)
}
