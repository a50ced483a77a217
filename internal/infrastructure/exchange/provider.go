package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// StaticProvider serves conversion rates from a fixed table of USD-relative
// quotes. It stands in for a market data feed in development and testing.
type StaticProvider struct {
	// perUSD maps a currency to how many units one USD buys.
	perUSD map[domain.Currency]decimal.Decimal
}

// NewStaticProvider creates a provider with built-in quotes.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		perUSD: map[domain.Currency]decimal.Decimal{
			domain.CurrencyUSD: decimal.NewFromInt(1),
			domain.CurrencyEUR: decimal.RequireFromString("0.92"),
			domain.CurrencyGBP: decimal.RequireFromString("0.79"),
			domain.CurrencyTRY: decimal.RequireFromString("32.5"),
			domain.CurrencyJPY: decimal.RequireFromString("151.4"),
		},
	}
}

// Rate returns how many units of to one unit of from buys.
func (p *StaticProvider) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	fromQuote, ok := p.perUSD[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, from)
	}

	toQuote, ok := p.perUSD[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, to)
	}

	return toQuote.DivRound(fromQuote, 8), nil
}

// CachedProvider memoizes another provider's rates in a cache. Rates age
// out with the TTL; a cache failure falls through to the inner provider so
// exchanges keep working while the cache is down.
type CachedProvider struct {
	inner  usecase.RateProvider
	cache  usecase.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProvider wraps a provider with caching.
func NewCachedProvider(inner usecase.RateProvider, cache usecase.Cache, ttl time.Duration, logger zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Rate returns a cached rate when fresh, otherwise asks the inner provider
// and stores the result.
func (p *CachedProvider) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	key := rateKey(from, to)

	if cached, err := p.cache.Get(ctx, key); err == nil {
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			metrics.RateCacheHit()
			return rate, nil
		}

		p.logger.Warn().Str("key", key).Str("value", cached).Msg("discarding unparseable cached rate")
	}

	rate, err := p.inner.Rate(ctx, from, to)
	if err != nil {
		metrics.RateLookup("error")
		return decimal.Zero, err
	}

	metrics.RateLookup("ok")

	if err := p.cache.Set(ctx, key, rate.String(), p.ttl); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("failed to cache exchange rate")
	}

	return rate, nil
}

func rateKey(from, to domain.Currency) string {
	return fmt.Sprintf("rate:%s:%s", from, to)
}
