package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/totegamma/confadmin/internal/domain"
)

type fakeCache struct {
	items map[string]*memcache.Item
	err   error
}

func (f *fakeCache) Get(key string) (*memcache.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return item, nil
}

func (f *fakeCache) Set(item *memcache.Item) error {
	if f.err != nil {
		return f.err
	}
	f.items[item.Key] = item
	return nil
}

func TestViewCacheRoundTrip(t *testing.T) {
	cache := &fakeCache{items: map[string]*memcache.Item{}}
	repo := NewViewCache(cache)
	ctx := context.Background()

	views := domain.SpeakerViews{
		DefaultConf:        "Conf2024",
		GeneratedAt:        time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		SpeakersUnfiltered: []domain.Speaker{
			{ID: "s1", NameLast: "Archer"},
			{ID: "s2", NameLast: "Baker", Sessions: []string{}},
		},
	}
	if err := repo.Publish(ctx, views); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	item := cache.items[viewCacheKey]
	if item == nil || item.Expiration != viewCacheTTL {
		t.Fatalf("unexpected cache item: %+v", item)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultConf != "Conf2024" || !loaded.GeneratedAt.Equal(views.GeneratedAt) {
		t.Fatalf("unexpected views: %+v", loaded)
	}
	if len(loaded.SpeakersUnfiltered) != 2 || loaded.SpeakersUnfiltered[0].NameLast != "Archer" {
		t.Fatalf("unexpected speakers: %+v", loaded.SpeakersUnfiltered)
	}
	if loaded.SpeakersUnfiltered[0].Sessions != nil {
		t.Fatalf("expected nil sessions to stay nil, got %#v", loaded.SpeakersUnfiltered[0].Sessions)
	}
	if s := loaded.SpeakersUnfiltered[1].Sessions; s == nil || len(s) != 0 {
		t.Fatalf("expected empty sessions to stay empty, got %#v", s)
	}
}

func TestViewCacheMiss(t *testing.T) {
	repo := NewViewCache(&fakeCache{items: map[string]*memcache.Item{}})

	_, err := repo.Load(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestViewCacheErrors(t *testing.T) {
	cache := &fakeCache{items: map[string]*memcache.Item{}, err: errors.New("connection refused")}
	repo := NewViewCache(cache)

	if err := repo.Publish(context.Background(), domain.SpeakerViews{}); err == nil {
		t.Fatalf("expected publish error")
	}
	_, err := repo.Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected load error, got %v", err)
	}

	cache.err = nil
	cache.items[viewCacheKey] = &memcache.Item{Key: viewCacheKey, Value: []byte("{")}
	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
