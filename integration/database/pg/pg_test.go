package pg_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/submission"
	"github.com/dmitrymomot/onboarding/integration/database/pg"
)

type call struct {
	sql  string
	args []any
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeDB records queries and answers QueryRow with row.
type fakeDB struct {
	calls []call
	row   fakeRow
	tx    *fakeTx
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{sql, args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{sql, args})
	return f.row
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	f.tx = &fakeTx{db: &fakeDB{row: f.row}}
	return f.tx, nil
}

type fakeTx struct {
	pgx.Tx
	db         *fakeDB
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func seqRow(n int64) fakeRow {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = n
		return nil
	}}
}

func TestNextSequence(t *testing.T) {
	t.Parallel()
	db := &fakeDB{row: seqRow(7)}
	repo := pg.NewSubmissionRepository(db)

	seq, err := repo.NextSequence(context.Background(), "202606")
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "reference_sequences")
	assert.Equal(t, []any{"202606"}, db.calls[0].args)
}

func TestCreate(t *testing.T) {
	t.Parallel()
	db := &fakeDB{}
	repo := pg.NewSubmissionRepository(db)

	at := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	app := &submission.Application{
		ID:          uuid.New(),
		Reference:   "DFSA-202606-00001",
		AccountID:   "acc-1",
		Activity:    pathway.DNFBP,
		Pathway:     pathway.PathwayB,
		Status:      submission.StatusSubmitted,
		Record:      schema.Record{"contactName": "Jane Doe"},
		Score:       100,
		CreatedAt:   at,
		SubmittedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), app))

	require.Len(t, db.calls, 1)
	args := db.calls[0].args
	require.Len(t, args, 10)
	assert.Equal(t, app.ID, args[0])
	assert.Equal(t, "DNFBP", args[3])
	assert.Equal(t, "B", args[4])

	var stored map[string]any
	require.NoError(t, json.Unmarshal(args[6].([]byte), &stored))
	assert.Equal(t, "Jane Doe", stored["contactName"])
	assert.Equal(t, &at, args[9])
}

func TestGet(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	at := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

	row := fakeRow{scan: func(dest ...any) error {
		*dest[0].(*uuid.UUID) = id
		*dest[1].(*string) = "DFSA-202606-00003"
		*dest[2].(*string) = "acc-1"
		*dest[3].(*string) = "CRYPTO_TOKEN"
		*dest[4].(*string) = "C"
		*dest[5].(*string) = "submitted"
		*dest[6].(*[]byte) = []byte(`{"contactName":"Jane Doe","shareholders":[{"name":"A"}]}`)
		*dest[7].(*int) = 96
		*dest[8].(*time.Time) = at
		*dest[9].(**time.Time) = &at
		return nil
	}}

	t.Run("by reference", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: row}
		app, err := pg.NewSubmissionRepository(db).Get(context.Background(), "DFSA-202606-00003")
		require.NoError(t, err)

		assert.Contains(t, db.calls[0].sql, "WHERE reference = $1")
		assert.Equal(t, id, app.ID)
		assert.Equal(t, pathway.CryptoToken, app.Activity)
		assert.Equal(t, pathway.PathwayC, app.Pathway)
		assert.Equal(t, submission.StatusSubmitted, app.Status)
		assert.Equal(t, 96, app.Score)
		assert.True(t, app.SubmittedAt.Equal(at))
		assert.Equal(t, "Jane Doe", app.Record["contactName"])
		assert.Len(t, app.Record["shareholders"], 1)
	})

	t.Run("by id", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: row}
		_, err := pg.NewSubmissionRepository(db).Get(context.Background(), id.String())
		require.NoError(t, err)
		assert.Contains(t, db.calls[0].sql, "WHERE id = $1")
		assert.Equal(t, []any{id}, db.calls[0].args)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
		_, err := pg.NewSubmissionRepository(db).Get(context.Background(), "DFSA-202606-09999")
		assert.ErrorIs(t, err, submission.ErrNotFound)
	})
}

func TestInTx(t *testing.T) {
	t.Parallel()

	t.Run("commits and routes queries to the transaction", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{row: seqRow(1)}
		repo := pg.NewSubmissionRepository(db)

		err := repo.InTx(context.Background(), func(ctx context.Context) error {
			_, ok := pg.TxFromContext(ctx)
			assert.True(t, ok)
			_, err := repo.NextSequence(ctx, "202606")
			return err
		})
		require.NoError(t, err)
		assert.Empty(t, db.calls)
		require.NotNil(t, db.tx)
		assert.Len(t, db.tx.db.calls, 1)
		assert.True(t, db.tx.committed)
		assert.False(t, db.tx.rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		boom := errors.New("boom")

		err := pg.NewSubmissionRepository(db).InTx(context.Background(), func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.False(t, db.tx.committed)
		assert.True(t, db.tx.rolledBack)
	})

	t.Run("joins an outer transaction", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		outer := &fakeTx{db: &fakeDB{}}
		ctx := pg.WithTx(context.Background(), outer)

		err := pg.InTx(ctx, db, func(inner context.Context) error {
			tx, _ := pg.TxFromContext(inner)
			assert.Same(t, outer, tx)
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, db.tx)
		assert.False(t, outer.committed)
	})
}

func TestSubmissionFlow(t *testing.T) {
	t.Parallel()
	db := &fakeDB{row: seqRow(12)}
	repo := pg.NewSubmissionRepository(db)
	svc := submission.NewService(repo, nil, nil, submission.WithClock(func() time.Time {
		return time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	}))

	record, err := pathway.Example(pathway.RegisteredAuditor)
	require.NoError(t, err)
	app, err := svc.Submit(context.Background(), "acc-1", pathway.RegisteredAuditor, record)
	require.NoError(t, err)
	assert.Equal(t, "DFSA-202606-00012", app.Reference)

	require.NotNil(t, db.tx)
	assert.True(t, db.tx.committed)
	assert.Len(t, db.tx.db.calls, 2)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	_, ok := pg.TxFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.Background()
	assert.Equal(t, ctx, pg.WithTx(ctx, nil))

	tx := &fakeTx{}
	got, ok := pg.TxFromContext(pg.WithTx(ctx, tx))
	assert.True(t, ok)
	assert.Same(t, tx, got)
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, pg.IsDuplicateKeyError(dup))
	assert.False(t, pg.IsDuplicateKeyError(fk))
	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.True(t, pg.IsTxClosedError(pgx.ErrTxClosed))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.NoError(t, pg.Healthcheck(pinger{})(ctx))
	assert.ErrorIs(t, pg.Healthcheck(pinger{errors.New("down")})(ctx), pg.ErrHealthcheckFailed)
}

func TestConnectRequiresConnectionString(t *testing.T) {
	t.Parallel()
	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "::not a url::"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrations(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(pg.Migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := fs.ReadFile(pg.Migrations, files[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "-- +goose Up"))
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS applications")

	ctx := context.Background()
	assert.ErrorIs(t, pg.Migrate(ctx, nil, pg.Config{}, nil), pg.ErrMigrationPathNotProvided)
	assert.ErrorIs(t, pg.Migrate(ctx, nil, pg.Config{MigrationsPath: "missing"}, nil), pg.ErrMigrationsDirNotFound)
}
