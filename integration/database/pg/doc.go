// Package pg provides PostgreSQL connectivity, migrations and the
// application repository.
//
// Connect builds a pgx connection pool from Config and retries until the
// database answers a ping. Config is populated from the environment:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
// Migrate applies the embedded goose migrations through a database/sql view
// of the pool.
//
// # Repository
//
// SubmissionRepository implements submission.Store. Form data is stored as
// JSONB and references are drawn from a per-month counter in
// reference_sequences. The repository also implements submission.Transactor,
// so the counter increment and the insert commit together.
//
// # Transactions
//
// WithTx attaches a pgx.Tx to a context and TxFromContext retrieves it.
// Repository methods use the transaction from the context when one is
// present, so several repositories can take part in one transaction:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context) error {
//		seq, err := repo.NextSequence(ctx, period)
//		if err != nil {
//			return err
//		}
//		...
//	})
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify driver errors.
package pg
