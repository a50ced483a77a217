package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

func TestStaticProviderRate(t *testing.T) {
	p := NewStaticProvider()

	rate, err := p.Rate(context.Background(), domain.CurrencyUSD, domain.CurrencyEUR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rate.Equal(decimal.RequireFromString("0.92")) {
		t.Fatalf("USD->EUR rate = %s, want 0.92", rate)
	}
}

func TestStaticProviderIdentity(t *testing.T) {
	p := NewStaticProvider()

	rate, err := p.Rate(context.Background(), domain.CurrencyEUR, domain.CurrencyEUR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rate.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("EUR->EUR rate = %s, want 1", rate)
	}
}

func TestStaticProviderUnknownCurrency(t *testing.T) {
	p := NewStaticProvider()

	_, err := p.Rate(context.Background(), domain.Currency("XXX"), domain.CurrencyEUR)
	if !errors.Is(err, domain.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

type memoryCache struct {
	values map[string]string
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

type countingProvider struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (p *countingProvider) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	p.calls++
	return p.rate, p.err
}

func TestCachedProviderCachesRate(t *testing.T) {
	inner := &countingProvider{rate: decimal.RequireFromString("0.9")}
	cache := newMemoryCache()
	p := NewCachedProvider(inner, cache, time.Minute, zerolog.Nop())

	for range 3 {
		rate, err := p.Rate(context.Background(), domain.CurrencyUSD, domain.CurrencyEUR)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rate.Equal(decimal.RequireFromString("0.9")) {
			t.Fatalf("rate = %s, want 0.9", rate)
		}
	}

	if inner.calls != 1 {
		t.Fatalf("inner provider called %d times, want 1", inner.calls)
	}
	if cache.sets != 1 {
		t.Fatalf("cache set %d times, want 1", cache.sets)
	}
}

func TestCachedProviderPropagatesInnerError(t *testing.T) {
	inner := &countingProvider{err: domain.ErrRateUnavailable}
	p := NewCachedProvider(inner, newMemoryCache(), time.Minute, zerolog.Nop())

	_, err := p.Rate(context.Background(), domain.CurrencyUSD, domain.CurrencyEUR)
	if !errors.Is(err, domain.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestCachedProviderDiscardsGarbage(t *testing.T) {
	inner := &countingProvider{rate: decimal.RequireFromString("0.9")}
	cache := newMemoryCache()
	cache.values["rate:USD:EUR"] = "not-a-number"

	p := NewCachedProvider(inner, cache, time.Minute, zerolog.Nop())

	rate, err := p.Rate(context.Background(), domain.CurrencyUSD, domain.CurrencyEUR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rate.Equal(decimal.RequireFromString("0.9")) {
		t.Fatalf("rate = %s, want fresh 0.9", rate)
	}
	if inner.calls != 1 {
		t.Fatalf("inner provider called %d times, want 1", inner.calls)
	}
}
