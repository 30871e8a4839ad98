package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memStore) Put(key, _, _, response string) error {
	m[key] = response
	return nil
}

type countingClient struct {
	calls int
	err   error
}

func (c *countingClient) Name() string { return "fake" }
func (c *countingClient) Call(_ context.Context, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "answer to " + prompt, nil
}

func joinKey(provider, model, prompt string) string { return provider + "|" + model + "|" + prompt }

func TestWithCache(t *testing.T) {
	inner := &countingClient{}
	store := memStore{}
	c := WithCache(inner, "m1", store, joinKey, zerolog.Nop())
	assert.Equal(t, "fake", c.Name())

	for i := 0; i < 3; i++ {
		got, err := c.Call(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, "answer to p", got)
	}
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "answer to p", store["fake|m1|p"])

	_, err := c.Call(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestWithCache_FailuresNotCached(t *testing.T) {
	inner := &countingClient{err: &Error{Provider: "fake", Kind: KindRateLimit, Err: errors.New("slow")}}
	store := memStore{}
	c := WithCache(inner, "m", store, joinKey, zerolog.Nop())

	_, err := c.Call(context.Background(), "p")
	assert.True(t, IsRateLimit(err))
	_, err = c.Call(context.Background(), "p")
	assert.Error(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Empty(t, store)
}
