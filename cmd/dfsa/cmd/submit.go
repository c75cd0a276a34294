package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/config"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/submission"
	"github.com/dmitrymomot/onboarding/integration/database/pg"
	"github.com/dmitrymomot/onboarding/integration/database/redis"
)

// openStores connects the application repository and the draft store.
// Tests replace it.
var openStores = func(ctx context.Context, log *slog.Logger) (submission.Store, submission.DraftStore, func(), error) {
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, nil, nil, err
	}
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, nil, nil, err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	closeFn := func() {
		_ = client.Close()
		pool.Close()
	}
	return pg.NewSubmissionRepository(pool), redis.NewDraftStoreFromConfig(client, redisCfg), closeFn, nil
}

func newSubmitCmd(o *options) *cobra.Command {
	var (
		flags   recordFlags
		account string
		draft   bool
		step    string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an application, or save it as a draft",
		Long: `Submit an application record for an account.

The record is validated first; an invalid record is rejected and nothing is
stored. A valid record is saved in PostgreSQL (PG_* variables) under a new
DFSA-YYYYMM-NNNNN reference. With --draft the record is stored in Redis
(REDIS_* variables) as the account's draft instead, whatever its state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := pathway.ParseActivityType(flags.activity)
			if err != nil {
				return err
			}
			record, err := readRecord(flags.file, flags.format, cmd.InOrStdin())
			if err != nil {
				return err
			}

			store, drafts, closeFn, err := openStores(cmd.Context(), o.log)
			if err != nil {
				return err
			}
			defer closeFn()

			var opts []submission.Option
			if flags.stage != "" {
				opts = append(opts, submission.WithStage(flags.stage))
			}
			svc := submission.NewService(store, drafts, o.log, opts...)
			out := cmd.OutOrStdout()

			if draft {
				d, err := svc.SaveDraft(cmd.Context(), submission.DraftInput{
					AccountID: account, Activity: a, Record: record, CurrentStep: step,
				})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s version %d, %d%% complete, current step %q\n",
					okStyle.Render("Draft saved:"), d.Version, d.Progress.Percent, d.Progress.CurrentStep)
				return err
			}

			app, err := svc.Submit(cmd.Context(), account, a, record)
			var rejected *submission.RejectedError
			if errors.As(err, &rejected) {
				if err := printResult(out, rejected.Result); err != nil {
					return err
				}
				return ErrInvalid
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s %s (pathway %s, %d%% complete)\n",
				okStyle.Render("Submitted:"), app.Reference, app.Pathway, app.Score)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&account, "account", "", "account id")
	cmd.Flags().BoolVar(&draft, "draft", false, "save as draft instead of submitting")
	cmd.Flags().StringVar(&step, "step", "", "current wizard step saved with a draft")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
