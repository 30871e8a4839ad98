package providers

import (
	"context"

	"github.com/rs/zerolog"
)

// ResponseStore persists responses by key.
type ResponseStore interface {
	Get(key string) (string, bool)
	Put(key, provider, model, response string) error
}

// KeyFunc derives a store key for one call.
type KeyFunc func(provider, model, prompt string) string

type cachedClient struct {
	next  Client
	store ResponseStore
	model string
	key   KeyFunc
	log   zerolog.Logger
}

// WithCache returns a Client that answers from store when it holds a
// response for the same provider, model, and prompt, and records successful
// responses otherwise. Failures are never cached.
func WithCache(next Client, model string, store ResponseStore, key KeyFunc, log zerolog.Logger) Client {
	return &cachedClient{next: next, store: store, model: model, key: key, log: log}
}

func (c *cachedClient) Name() string { return c.next.Name() }

func (c *cachedClient) Call(ctx context.Context, prompt string) (string, error) {
	key := c.key(c.next.Name(), c.model, prompt)
	if resp, ok := c.store.Get(key); ok {
		c.log.Debug().Ctx(ctx).Str("key", key[:min(12, len(key))]).Msg("cache hit")
		return resp, nil
	}
	resp, err := c.next.Call(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := c.store.Put(key, c.next.Name(), c.model, resp); err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Msg("cache write failed")
	}
	return resp, nil
}
