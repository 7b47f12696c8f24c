package sqlstore

import "github.com/goliatone/go-oauth1/core"

var (
	_ core.TokenStateOracle = (*TokenStateStore)(nil)
	_ core.TokenStateOracle = (*CachedTokenStateOracle)(nil)
)
