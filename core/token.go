package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTokenNotFound    = errors.New("core: token not found")
	ErrInvalidTokenKind = errors.New("core: invalid token kind")
)

// TokenKind is what a TokenStateOracle reports for a token string. The zero
// value is not a valid answer.
type TokenKind string

const (
	TokenKindRequest TokenKind = "request"
	TokenKindAccess  TokenKind = "access"
)

func ParseTokenKind(value string) (TokenKind, error) {
	kind := TokenKind(strings.TrimSpace(strings.ToLower(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTokenKind, value)
	}
	return kind, nil
}

func (k TokenKind) Valid() bool {
	return k == TokenKindRequest || k == TokenKindAccess
}

// TokenStateOracle reports whether a token is still a request token or has been
// exchanged for an access token. Unknown tokens must be reported with an error
// wrapping ErrTokenNotFound, never coerced into a kind.
type TokenStateOracle interface {
	Classify(ctx context.Context, token string) (TokenKind, error)
}

// TokenKindMap is an in-memory oracle keyed by token string.
type TokenKindMap map[string]TokenKind

func (m TokenKindMap) Classify(_ context.Context, token string) (TokenKind, error) {
	kind, ok := m[token]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTokenNotFound, token)
	}
	return kind, nil
}
