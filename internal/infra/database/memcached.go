package database

import (
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached connects to a comma-separated list of memcached servers and checks they answer.
func NewMemcached(servers string) (*memcache.Client, error) {
	mc := memcache.New(strings.Split(servers, ",")...)
	mc.Timeout = 500 * time.Millisecond
	if err := mc.Ping(); err != nil {
		return nil, err
	}
	return mc, nil
}
