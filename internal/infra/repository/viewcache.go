package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/totegamma/confadmin/internal/domain"
)

const (
	viewCacheKey = "confadmin:speakerviews"
	// an hour; a fresher snapshot arrives on every derive pass
	viewCacheTTL = 60 * 60
)

// Cache is the subset of the memcache client the view cache needs.
type Cache interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
}

// ViewCache keeps the last derived speaker views in memcached so a freshly started
// process can serve the dashboard before its first backend fetch completes.
type ViewCache struct {
	mc Cache
}

func NewViewCache(mc Cache) *ViewCache {
	return &ViewCache{mc: mc}
}

func (r *ViewCache) Publish(ctx context.Context, views domain.SpeakerViews) error {
	value, err := json.Marshal(views)
	if err != nil {
		return err
	}
	err = r.mc.Set(&memcache.Item{
		Key:        viewCacheKey,
		Value:      value,
		Expiration: viewCacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to store speaker views: %w", err)
	}
	return nil
}

func (r *ViewCache) Load(ctx context.Context) (domain.SpeakerViews, error) {
	item, err := r.mc.Get(viewCacheKey)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return domain.SpeakerViews{}, domain.NotFoundError{Resource: "speaker views"}
	}
	if err != nil {
		return domain.SpeakerViews{}, fmt.Errorf("failed to load speaker views: %w", err)
	}

	var views domain.SpeakerViews
	if err := json.Unmarshal(item.Value, &views); err != nil {
		return domain.SpeakerViews{}, fmt.Errorf("failed to decode speaker views: %w", err)
	}
	return views, nil
}
