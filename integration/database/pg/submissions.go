package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/submission"
)

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner starts transactions.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	DBTX
	Beginner
}

// SubmissionRepository stores submitted applications in PostgreSQL.
type SubmissionRepository struct {
	db DB
}

// NewSubmissionRepository creates a repository over db.
func NewSubmissionRepository(db DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var (
	_ submission.Store      = (*SubmissionRepository)(nil)
	_ submission.Transactor = (*SubmissionRepository)(nil)
)

const (
	nextSequenceQuery = `
		INSERT INTO reference_sequences (period, last_value) VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE SET last_value = reference_sequences.last_value + 1
		RETURNING last_value`

	insertApplicationQuery = `
		INSERT INTO applications (id, reference, account_id, activity_type, pathway, status, form_data, score, created_at, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectApplicationColumns = `
		SELECT id, reference, account_id, activity_type, pathway, status, form_data, score, created_at, submitted_at
		FROM applications`
)

// InTx implements submission.Transactor.
func (r *SubmissionRepository) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return InTx(ctx, r.db, fn)
}

// NextSequence increments and returns the counter of period.
func (r *SubmissionRepository) NextSequence(ctx context.Context, period string) (int64, error) {
	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, nextSequenceQuery, period).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to allocate reference sequence: %w", err)
	}
	return seq, nil
}

// Create inserts a submitted application.
func (r *SubmissionRepository) Create(ctx context.Context, app *submission.Application) error {
	data, err := json.Marshal(app.Record)
	if err != nil {
		return fmt.Errorf("failed to encode form data: %w", err)
	}

	var submittedAt *time.Time
	if !app.SubmittedAt.IsZero() {
		submittedAt = &app.SubmittedAt
	}

	_, err = r.conn(ctx).Exec(ctx, insertApplicationQuery,
		app.ID,
		app.Reference,
		app.AccountID,
		string(app.Activity),
		string(app.Pathway),
		string(app.Status),
		data,
		app.Score,
		app.CreatedAt,
		submittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// Get loads an application by UUID or by reference.
func (r *SubmissionRepository) Get(ctx context.Context, idOrRef string) (*submission.Application, error) {
	query := selectApplicationColumns + ` WHERE reference = $1`
	var arg any = idOrRef
	if id, err := uuid.Parse(idOrRef); err == nil {
		query = selectApplicationColumns + ` WHERE id = $1`
		arg = id
	}

	var (
		app         submission.Application
		activity    string
		p           string
		status      string
		data        []byte
		submittedAt *time.Time
	)
	err := r.conn(ctx).QueryRow(ctx, query, arg).Scan(
		&app.ID,
		&app.Reference,
		&app.AccountID,
		&activity,
		&p,
		&status,
		&data,
		&app.Score,
		&app.CreatedAt,
		&submittedAt,
	)
	if IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: %s", submission.ErrNotFound, idOrRef)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	app.Activity = pathway.ActivityType(activity)
	app.Pathway = pathway.Pathway(p)
	app.Status = submission.Status(status)
	if submittedAt != nil {
		app.SubmittedAt = *submittedAt
	}
	app.Record = schema.Record{}
	if err := json.Unmarshal(data, &app.Record); err != nil {
		return nil, fmt.Errorf("failed to decode form data: %w", err)
	}
	return &app, nil
}

func (r *SubmissionRepository) conn(ctx context.Context) DBTX {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db
}
