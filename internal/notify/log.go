package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/redissvc"
)

// MessageLog collects sent messages until the next summary drains them.
type MessageLog interface {
	Append(ctx context.Context, msg models.Message) error
	Drain(ctx context.Context) ([]models.Message, error)
}

type MemoryLog struct {
	mu      sync.Mutex
	entries []models.Message
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(_ context.Context, msg models.Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
	return nil
}

func (l *MemoryLog) Drain(_ context.Context) ([]models.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.entries
	l.entries = nil
	return out, nil
}

const DailyMessageLogKey = "kirana:messages:daily"

// RedisLog keeps the log as a Redis list so it survives restarts.
type RedisLog struct {
	rs  *redissvc.RedisService
	key string
}

func NewRedisLog(rs *redissvc.RedisService) *RedisLog {
	return &RedisLog{rs: rs, key: DailyMessageLogKey}
}

func (l *RedisLog) Append(ctx context.Context, msg models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return l.rs.Append(ctx, l.key, data)
}

// Drain skips entries that do not decode.
func (l *RedisLog) Drain(ctx context.Context) ([]models.Message, error) {
	raw, err := l.rs.Drain(ctx, l.key)
	if err != nil {
		return nil, err
	}

	out := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal(item, &msg); err != nil {
			log.Printf("⚠️ Skipping malformed message log entry: %v", err)
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}
