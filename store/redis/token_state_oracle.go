package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-oauth1/core"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix   = "oauth1"
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 3 * time.Second
)

type Config struct {
	Addr        string        `koanf:"addr" mapstructure:"addr"`
	Username    string        `koanf:"username" mapstructure:"username"`
	Password    string        `koanf:"password" mapstructure:"password"`
	DB          int           `koanf:"db" mapstructure:"db"`
	KeyPrefix   string        `koanf:"key_prefix" mapstructure:"key_prefix"`
	DialTimeout time.Duration `koanf:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `koanf:"read_timeout" mapstructure:"read_timeout"`
}

type TokenStateOracle struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewTokenStateOracle connects to Redis and verifies the connection.
func NewTokenStateOracle(ctx context.Context, cfg Config) (*TokenStateOracle, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redisstore: addr is required")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: connect: %w", err)
	}
	return NewTokenStateOracleWithClient(client, cfg.KeyPrefix), nil
}

// NewTokenStateOracleWithClient wraps a pre-configured client. An empty
// prefix falls back to DefaultKeyPrefix.
func NewTokenStateOracleWithClient(client redis.UniversalClient, keyPrefix string) *TokenStateOracle {
	keyPrefix = strings.TrimSpace(keyPrefix)
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &TokenStateOracle{client: client, keyPrefix: keyPrefix}
}

func (o *TokenStateOracle) Key(token string) string {
	return o.keyPrefix + ":token:" + token
}

func (o *TokenStateOracle) Classify(ctx context.Context, token string) (core.TokenKind, error) {
	if o == nil || o.client == nil {
		return "", errors.New("redisstore: token state oracle is not configured")
	}
	value, err := o.client.Get(ctx, o.Key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: %q", core.ErrTokenNotFound, token)
		}
		return "", fmt.Errorf("redisstore: get token state: %w", err)
	}
	return core.ParseTokenKind(value)
}

// Save records the kind of token. A zero ttl keeps the key until deleted.
func (o *TokenStateOracle) Save(ctx context.Context, token string, kind core.TokenKind, ttl time.Duration) error {
	if o == nil || o.client == nil {
		return errors.New("redisstore: token state oracle is not configured")
	}
	if token == "" {
		return errors.New("redisstore: token is required")
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidTokenKind, kind)
	}
	if err := o.client.Set(ctx, o.Key(token), string(kind), ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set token state: %w", err)
	}
	return nil
}

func (o *TokenStateOracle) Delete(ctx context.Context, token string) error {
	if o == nil || o.client == nil {
		return errors.New("redisstore: token state oracle is not configured")
	}
	if err := o.client.Del(ctx, o.Key(token)).Err(); err != nil {
		return fmt.Errorf("redisstore: delete token state: %w", err)
	}
	return nil
}

func (o *TokenStateOracle) Ping(ctx context.Context) error {
	return o.client.Ping(ctx).Err()
}

func (o *TokenStateOracle) Close() error {
	return o.client.Close()
}

var _ core.TokenStateOracle = (*TokenStateOracle)(nil)
