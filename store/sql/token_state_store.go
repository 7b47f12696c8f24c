package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-oauth1/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TokenState is the recorded kind of an issued token.
type TokenState struct {
	Token       string
	Kind        core.TokenKind
	ConsumerKey string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TokenStateStore answers token kind lookups from the oauth1_tokens table.
// Token values are matched exactly; they are opaque and case-sensitive.
type TokenStateStore struct {
	db   *bun.DB
	repo repository.Repository[*tokenRecord]
}

func NewTokenStateStore(db *bun.DB) (*TokenStateStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*tokenRecord](db, tokenHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid token repository wiring: %w", err)
		}
	}
	return &TokenStateStore{db: db, repo: repo}, nil
}

func (s *TokenStateStore) Classify(ctx context.Context, token string) (core.TokenKind, error) {
	state, err := s.Get(ctx, token)
	if err != nil {
		return "", err
	}
	return state.Kind, nil
}

func (s *TokenStateStore) Get(ctx context.Context, token string) (TokenState, error) {
	if s == nil || s.repo == nil {
		return TokenState{}, fmt.Errorf("sqlstore: token state store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("token", "=", token),
		repository.OrderBy("updated_at DESC"),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return TokenState{}, err
	}
	if len(records) == 0 {
		return TokenState{}, fmt.Errorf("%w: %q", core.ErrTokenNotFound, token)
	}
	return records[0].toDomain()
}

// Save records the kind of a token, replacing any previous state for it.
func (s *TokenStateStore) Save(ctx context.Context, state TokenState) (TokenState, error) {
	if s == nil || s.db == nil {
		return TokenState{}, fmt.Errorf("sqlstore: token state store is not configured")
	}
	if state.Token == "" {
		return TokenState{}, fmt.Errorf("sqlstore: token is required")
	}
	if !state.Kind.Valid() {
		return TokenState{}, fmt.Errorf("%w: %q", core.ErrInvalidTokenKind, state.Kind)
	}
	now := time.Now().UTC()
	state.ConsumerKey = strings.TrimSpace(state.ConsumerKey)

	var saved *tokenRecord
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record := &tokenRecord{}
		err := tx.NewSelect().
			Model(record).
			Where("?TableAlias.token = ?", state.Token).
			Limit(1).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if errors.Is(err, sql.ErrNoRows) {
			record = &tokenRecord{
				ID:          uuid.NewString(),
				Token:       state.Token,
				Kind:        string(state.Kind),
				ConsumerKey: state.ConsumerKey,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			inserted, insertErr := s.repo.CreateTx(ctx, tx, record)
			if insertErr != nil {
				return insertErr
			}
			saved = inserted
			return nil
		}

		record.Kind = string(state.Kind)
		record.ConsumerKey = state.ConsumerKey
		record.UpdatedAt = now
		if _, updateErr := tx.NewUpdate().
			Model(record).
			Column("kind", "consumer_key", "updated_at").
			WherePK().
			Exec(ctx); updateErr != nil {
			return updateErr
		}
		saved = record
		return nil
	})
	if err != nil {
		return TokenState{}, err
	}
	return saved.toDomain()
}

func (s *TokenStateStore) Delete(ctx context.Context, token string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: token state store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*tokenRecord)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	return err
}

func (s *TokenStateStore) ListByConsumer(ctx context.Context, consumerKey string) ([]TokenState, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: token state store is not configured")
	}
	consumerKey = strings.TrimSpace(consumerKey)
	if consumerKey == "" {
		return nil, fmt.Errorf("sqlstore: consumer key is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("consumer_key", "=", consumerKey),
		repository.OrderBy("updated_at DESC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]TokenState, 0, len(records))
	for _, record := range records {
		state, err := record.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, state)
	}
	return out, nil
}

func (r *tokenRecord) toDomain() (TokenState, error) {
	if r == nil {
		return TokenState{}, fmt.Errorf("sqlstore: token record is nil")
	}
	kind, err := core.ParseTokenKind(r.Kind)
	if err != nil {
		return TokenState{}, fmt.Errorf("sqlstore: token %q: %w", r.Token, err)
	}
	return TokenState{
		Token:       r.Token,
		Kind:        kind,
		ConsumerKey: r.ConsumerKey,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}, nil
}
