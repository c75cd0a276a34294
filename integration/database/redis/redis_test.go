package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/submission"
	"github.com/dmitrymomot/onboarding/core/validator"
	"github.com/dmitrymomot/onboarding/integration/database/redis"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", f.err)
}

func TestDraftStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newFakeRedis()
	store := redis.NewDraftStore(client, redis.WithTTL(time.Hour))

	saved := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	d := &submission.Draft{
		ID:        uuid.New(),
		AccountID: "acc-1",
		Activity:  pathway.DNFBP,
		Record: schema.Record{
			"contactName":     "Jane Doe",
			"businessAddress": map[string]any{"city": "Dubai"},
		},
		Progress: submission.Progress{
			CurrentStep:      "entity",
			CurrentStepIndex: 2,
			CompletedSteps:   []string{"application", "contact"},
			Percent:          35,
		},
		Version:   3,
		CreatedAt: saved,
		SavedAt:   saved,
	}
	require.NoError(t, store.SaveDraft(ctx, d))
	assert.Equal(t, time.Hour, client.ttls["dfsa:draft:acc-1"])
	assert.Contains(t, client.data["dfsa:draft:acc-1"], `"currentStep":"entity"`)

	got, err := store.LoadDraft(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, pathway.DNFBP, got.Activity)
	assert.Equal(t, d.Progress, got.Progress)
	assert.Equal(t, 3, got.Version)
	assert.True(t, got.SavedAt.Equal(saved))
	assert.Equal(t, "Jane Doe", got.Record["contactName"])
	city, ok := schema.Lookup(got.Record, "businessAddress.city")
	require.True(t, ok)
	assert.Equal(t, "Dubai", city)

	require.NoError(t, store.DeleteDraft(ctx, "acc-1"))
	_, err = store.LoadDraft(ctx, "acc-1")
	assert.ErrorIs(t, err, submission.ErrDraftNotFound)
	assert.ErrorIs(t, store.DeleteDraft(ctx, "acc-1"), submission.ErrDraftNotFound)
}

func TestDraftStoreConfig(t *testing.T) {
	t.Parallel()
	client := newFakeRedis()
	store := redis.NewDraftStoreFromConfig(client, redis.Config{DraftTTL: time.Minute, KeyPrefix: "test:"})

	require.NoError(t, store.SaveDraft(context.Background(), &submission.Draft{AccountID: "acc-9"}))
	assert.Equal(t, time.Minute, client.ttls["test:acc-9"])
}

func TestDraftStoreErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("corrupt", func(t *testing.T) {
		t.Parallel()
		client := newFakeRedis()
		client.data["dfsa:draft:acc-1"] = "{not json"
		_, err := redis.NewDraftStore(client).LoadDraft(ctx, "acc-1")
		assert.ErrorIs(t, err, redis.ErrCorruptDraft)
	})

	t.Run("connection", func(t *testing.T) {
		t.Parallel()
		client := newFakeRedis()
		client.err = errors.New("connection refused")
		store := redis.NewDraftStore(client)

		_, err := store.LoadDraft(ctx, "acc-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, submission.ErrDraftNotFound)
		assert.Error(t, store.SaveDraft(ctx, &submission.Draft{AccountID: "acc-1"}))
	})
}

func TestDraftStoreWithService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := submission.NewService(nil, redis.NewDraftStore(newFakeRedis()), nil)

	first, err := svc.SaveDraft(ctx, submission.DraftInput{AccountID: "acc-1", Activity: pathway.RegisteredAuditor})
	require.NoError(t, err)
	second, err := svc.SaveDraft(ctx, submission.DraftInput{AccountID: "acc-1", Activity: pathway.RegisteredAuditor})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Version)
}

func TestDraftStoreLastWriteWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := redis.NewDraftStore(newFakeRedis())

	stale := &submission.Draft{AccountID: "acc-1", Version: 2, Progress: submission.Progress{CurrentStep: "contact"}}
	fresh := &submission.Draft{AccountID: "acc-1", Version: 2, Progress: submission.Progress{CurrentStep: "entity"}}
	require.NoError(t, store.SaveDraft(ctx, fresh))
	require.NoError(t, store.SaveDraft(ctx, stale))

	got, err := store.LoadDraft(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, "contact", got.Progress.CurrentStep)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.NoError(t, redis.Healthcheck(newFakeRedis())(ctx))
	down := newFakeRedis()
	down.err = errors.New("down")
	assert.ErrorIs(t, redis.Healthcheck(down)(ctx), redis.ErrHealthcheckFailed)
}

func TestConnectValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := redis.Connect(ctx, redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(ctx, redis.Config{ConnectionURL: "http://localhost:6379"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}

func TestConfigValidateTags(t *testing.T) {
	t.Parallel()

	valid := redis.Config{ConnectionURL: "rediss://cache.internal:6380/0", RetryAttempts: 3, KeyPrefix: "dfsa:draft:"}
	require.NoError(t, validator.ValidateStruct(&valid))

	tests := []struct {
		name   string
		modify func(c *redis.Config)
		field  string
	}{
		{"url without scheme", func(c *redis.Config) { c.ConnectionURL = "localhost:6379" }, "ConnectionURL"},
		{"negative retries", func(c *redis.Config) { c.RetryAttempts = -1 }, "RetryAttempts"},
		{"blank key prefix", func(c *redis.Config) { c.KeyPrefix = " " }, "KeyPrefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.modify(&cfg)
			err := validator.ValidateStruct(&cfg)
			require.Error(t, err)
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field), err.Error())
		})
	}
}
