package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/onboarding/core/submission"
)

// Commands is the part of the go-redis client the draft store uses.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DraftStore keeps one JSON encoded draft per account with a sliding TTL.
type DraftStore struct {
	client Commands
	prefix string
	ttl    time.Duration
}

var _ submission.DraftStore = (*DraftStore)(nil)

// DraftOption configures a DraftStore.
type DraftOption func(*DraftStore)

// WithTTL sets how long an untouched draft is kept. Zero keeps drafts forever.
func WithTTL(ttl time.Duration) DraftOption {
	return func(s *DraftStore) {
		s.ttl = ttl
	}
}

// WithKeyPrefix sets the key prefix, "dfsa:draft:" by default.
func WithKeyPrefix(prefix string) DraftOption {
	return func(s *DraftStore) {
		s.prefix = prefix
	}
}

// NewDraftStore creates a draft store. Drafts expire after 30 days unless
// WithTTL says otherwise.
func NewDraftStore(client Commands, opts ...DraftOption) *DraftStore {
	s := &DraftStore{client: client, prefix: "dfsa:draft:", ttl: 30 * 24 * time.Hour}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDraftStoreFromConfig applies the TTL and prefix of cfg.
func NewDraftStoreFromConfig(client Commands, cfg Config) *DraftStore {
	opts := []DraftOption{WithTTL(cfg.DraftTTL)}
	if cfg.KeyPrefix != "" {
		opts = append(opts, WithKeyPrefix(cfg.KeyPrefix))
	}
	return NewDraftStore(client, opts...)
}

func (s *DraftStore) SaveDraft(ctx context.Context, d *submission.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(d.AccountID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (s *DraftStore) LoadDraft(ctx context.Context, accountID string) (*submission.Draft, error) {
	data, err := s.client.Get(ctx, s.key(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, submission.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var d submission.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Join(ErrCorruptDraft, err)
	}
	return &d, nil
}

func (s *DraftStore) DeleteDraft(ctx context.Context, accountID string) error {
	n, err := s.client.Del(ctx, s.key(accountID)).Result()
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if n == 0 {
		return submission.ErrDraftNotFound
	}
	return nil
}

func (s *DraftStore) key(accountID string) string {
	return s.prefix + accountID
}
