package notify

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

type Summary struct {
	Total       int                        `json:"total"`
	Failed      int                        `json:"failed"`
	ByType      map[models.MessageType]int `json:"by_type"`
	ByRecipient map[string]int             `json:"by_recipient"`
	Messages    []models.Message           `json:"messages"`
}

// DailySummary drains the log and aggregates what it held.
func DailySummary(ctx context.Context, l MessageLog) (Summary, error) {
	msgs, err := l.Drain(ctx)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Total:       len(msgs),
		ByType:      map[models.MessageType]int{},
		ByRecipient: map[string]int{},
		Messages:    msgs,
	}
	for _, m := range msgs {
		s.ByType[m.Type]++
		s.ByRecipient[m.To]++
		if m.Status == models.MessageFailed {
			s.Failed++
		}
	}
	return s, nil
}

func FormatSummary(s Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 *Daily Message Summary*\n\n")
	sb.WriteString(fmt.Sprintf("Total messages: %d\n", s.Total))
	if s.Failed > 0 {
		sb.WriteString(fmt.Sprintf("Failed: %d\n", s.Failed))
	}

	types := make([]string, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	sb.WriteString("\nBy type:\n")
	for _, t := range types {
		sb.WriteString(fmt.Sprintf("• %s: %d\n", t, s.ByType[models.MessageType(t)]))
	}
	return sb.String()
}

// firstSummaryAt is the next 23:59 local time strictly after now.
func firstSummaryAt(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// StartDailySummary runs at the next 23:59 local time, then every interval,
// handing each non-empty summary to report. A non-positive interval means
// daily. It returns when ctx is done.
func StartDailySummary(ctx context.Context, l MessageLog, interval time.Duration, report func(Summary)) {
	runSummaries(ctx, l, firstSummaryAt(time.Now()), interval, report)
}

func runSummaries(ctx context.Context, l MessageLog, next time.Time, interval time.Duration, report func(Summary)) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	for {
		t := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}

		// Skip runs missed while the process was suspended.
		for now := time.Now(); !next.After(now); {
			next = next.Add(interval)
		}

		s, err := DailySummary(ctx, l)
		if err != nil {
			log.Printf("❌ Failed to build daily message summary: %v", err)
			continue
		}
		if s.Total == 0 {
			continue
		}
		report(s)
	}
}
