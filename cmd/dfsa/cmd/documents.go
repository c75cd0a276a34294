package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/config"
	"github.com/dmitrymomot/onboarding/core/documents"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/storage"
	"github.com/dmitrymomot/onboarding/integration/storage/s3"
)

// openStorage connects the document store. Tests replace it.
var openStorage = func(ctx context.Context) (storage.Storage, error) {
	var cfg s3.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return s3.New(ctx, cfg)
}

func newDocumentsCmd(o *options) *cobra.Command {
	var activity, account string
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List the documents an activity requires",
		Long: `List the documents an activity requires.

With --account, the account's uploaded documents are checked in S3
(configured through S3_* environment variables) and each requirement is
marked as provided or missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := pathway.ParseActivityType(activity)
			if err != nil {
				return err
			}
			required, err := pathway.RequiredDocuments(a)
			if err != nil {
				return err
			}

			missing := map[string]bool{}
			if account != "" {
				store, err := openStorage(cmd.Context())
				if err != nil {
					return err
				}
				keys, err := documents.New(store, o.log).Missing(cmd.Context(), account, a)
				if err != nil {
					return err
				}
				for _, k := range keys {
					missing[k] = true
				}
			}

			headers := []string{"#", "Field", "Document"}
			if account != "" {
				headers = append(headers, "Status")
			}
			t := newTable(headers...)
			for i, key := range required {
				row := []string{fmt.Sprint(i + 1), key, pathway.DocumentLabel(key)}
				if account != "" {
					status := okStyle.Render("provided")
					if missing[key] {
						status = failStyle.Render("missing")
					}
					row = append(row, status)
				}
				t.Row(row...)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s (%s)", a.Label(), a)))
			_, err = fmt.Fprintln(out, t.Render())
			return err
		},
	}
	activityFlag(cmd, &activity)
	cmd.Flags().StringVar(&account, "account", "", "account id whose uploads are checked")
	return cmd
}
