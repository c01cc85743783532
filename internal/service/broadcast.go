package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/totegamma/confadmin/internal/domain"
)

const subscriberBuffer = 4

// Broadcaster fans derived speaker views out to realtime subscribers.
// A view set whose content matches the last one sent is not re-sent.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
	last        []byte
	lastHash    uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: map[chan []byte]struct{}{},
	}
}

// ContentHash ignores GeneratedAt so reruns over unchanged data hash the same.
func ContentHash(views domain.SpeakerViews) (uint64, error) {
	views.GeneratedAt = time.Time{}
	b, err := json.Marshal(views)
	if err != nil {
		return 0, err
	}
	return xxh3.Hash(b), nil
}

func (b *Broadcaster) Publish(ctx context.Context, views domain.SpeakerViews) error {
	hash, err := ContentHash(views)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(views)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.last != nil && hash == b.lastHash {
		slog.DebugContext(ctx, "speaker views unchanged", slog.String("module", "broadcast"))
		return nil
	}
	b.last = payload
	b.lastHash = hash

	for ch := range b.subscribers {
		select {
		case ch <- payload:
		default:
			slog.WarnContext(ctx, "realtime subscriber lagging, dropping update", slog.String("module", "broadcast"))
		}
	}
	return nil
}

// Subscribe registers a subscriber. The latest payload, if any, is queued immediately.
// The returned cancel func must be called once the subscriber is done.
func (b *Broadcaster) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	if b.last != nil {
		ch <- b.last
	}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
