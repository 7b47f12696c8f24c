package sqlstore

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goliatone/go-oauth1/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const tokenStateCacheKeyPrefix = "go-oauth1::token_state::v1"

// CachedTokenStateOracle is a read-through cache in front of another oracle.
// Lookup failures, including unknown tokens, are never cached.
type CachedTokenStateOracle struct {
	base  core.TokenStateOracle
	cache repositorycache.CacheService
}

func NewCachedTokenStateOracle(
	base core.TokenStateOracle,
	cacheService repositorycache.CacheService,
) (*CachedTokenStateOracle, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base token state oracle is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: token state cache service is required")
	}
	return &CachedTokenStateOracle{base: base, cache: cacheService}, nil
}

// TokenStateCacheKey returns the deterministic cache key contract for token
// kind reads: go-oauth1::token_state::v1::<token> with the token URL-path
// escaped. Tokens are not normalized.
func TokenStateCacheKey(token string) string {
	return tokenStateCacheKeyPrefix + "::" + url.PathEscape(token)
}

func (o *CachedTokenStateOracle) Classify(ctx context.Context, token string) (core.TokenKind, error) {
	if o == nil || o.base == nil || o.cache == nil {
		return "", fmt.Errorf("sqlstore: cached token state oracle is not configured")
	}
	return repositorycache.GetOrFetch(ctx, o.cache, TokenStateCacheKey(token), func(ctx context.Context) (core.TokenKind, error) {
		kind, err := o.base.Classify(ctx, token)
		if err != nil {
			return "", err
		}
		if !kind.Valid() {
			return "", fmt.Errorf("%w: %q", core.ErrInvalidTokenKind, kind)
		}
		return kind, nil
	})
}

// Invalidate drops the cached kind for token. Call it after a token's state
// changes so the next lookup reads through.
func (o *CachedTokenStateOracle) Invalidate(ctx context.Context, token string) error {
	if o == nil || o.cache == nil {
		return fmt.Errorf("sqlstore: cached token state oracle is not configured")
	}
	return o.cache.Delete(ctx, TokenStateCacheKey(token))
}

// TokenStateOracleFromConfig returns base unchanged when caching is disabled,
// otherwise base behind a cache service built with the configured TTL.
func TokenStateOracleFromConfig(base core.TokenStateOracle, cfg core.CacheConfig) (core.TokenStateOracle, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base token state oracle is required")
	}
	if !cfg.Enabled {
		return base, nil
	}
	cacheConfig := repositorycache.DefaultConfig()
	if cfg.TTL > 0 {
		cacheConfig.TTL = cfg.TTL
	}
	cacheService, err := repositorycache.NewCacheService(cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: token state cache service: %w", err)
	}
	return NewCachedTokenStateOracle(base, cacheService)
}
