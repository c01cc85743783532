package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// SpeakerUpdateChannel is the redis channel carrying speaker-update requests.
const SpeakerUpdateChannel = "confadmin:speaker-update"

// Signal is the message published on SpeakerUpdateChannel.
type Signal struct {
	Type      string    `json:"type"`
	Origin    string    `json:"origin,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const signalTypeSpeakerUpdate = "speaker-update"

type SignalService struct {
	rdb     *redis.Client
	channel string
	origin  string
}

func NewSignalService(redisClient *redis.Client, origin string) *SignalService {
	return &SignalService{
		rdb:     redisClient,
		channel: SpeakerUpdateChannel,
		origin:  origin,
	}
}

func (s *SignalService) PublishSpeakerUpdate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Signal.Service.PublishSpeakerUpdate")
	defer span.End()

	jsonstr, err := json.Marshal(Signal{
		Type:      signalTypeSpeakerUpdate,
		Origin:    s.origin,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, s.channel, jsonstr).Err()
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Subscribe calls handler for every speaker-update signal until ctx is done.
// Handlers run one at a time, in arrival order.
func (s *SignalService) Subscribe(ctx context.Context, handler func(ctx context.Context)) error {
	pubsub := s.rdb.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var signal Signal
			if err := json.Unmarshal([]byte(msg.Payload), &signal); err != nil {
				slog.WarnContext(ctx, "malformed signal", slog.String("payload", msg.Payload), slog.String("module", "signal"))
				continue
			}
			if signal.Type != signalTypeSpeakerUpdate {
				continue
			}
			handler(ctx)
		}
	}
}

// LocalSignal delivers speaker-update signals inside one process.
// Used when no redis is configured.
type LocalSignal struct {
	ch chan struct{}
}

func NewLocalSignal() *LocalSignal {
	return &LocalSignal{ch: make(chan struct{}, 1)}
}

// PublishSpeakerUpdate never blocks; signals raised while one is pending coalesce into it.
func (s *LocalSignal) PublishSpeakerUpdate(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
	default:
	}
	return nil
}

func (s *LocalSignal) Subscribe(ctx context.Context, handler func(ctx context.Context)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.ch:
			handler(ctx)
		}
	}
}
