package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/documents"
	"github.com/dmitrymomot/onboarding/core/storage"
	"github.com/dmitrymomot/onboarding/core/validator"
)

func newUploadCmd(o *options) *cobra.Command {
	var (
		account, category, description, expiry string
		tags                                    []string
		confidential                            bool
	)
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a supporting document for an account",
		Long: `Upload a supporting document to the account's library in S3.

The category is the document requirement it satisfies, for example
businessPlan or amlPolicy. Files must be PDF, DOCX, XLSX, JPG, PNG or
PPTX and at most 5 MB.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			in := documents.Upload{
				AccountID:    account,
				Category:     category,
				Filename:     filepath.Base(path),
				ContentType:  storage.ContentTypeOf(path),
				Description:  description,
				Body:         f,
				Size:         info.Size(),
				Tags:         tags,
				Confidential: confidential,
			}
			if expiry != "" {
				t, ok := validator.ParseDate(expiry)
				if !ok {
					return fmt.Errorf("invalid --expires %q, expected YYYY-MM-DD", expiry)
				}
				in.ExpiryDate = t
			}

			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := documents.New(store, o.log).Upload(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  key:    %s\n  status: %s\n  at:     %s\n",
				okStyle.Render("Uploaded:"), doc.Name, doc.Key, doc.Status, doc.UploadedAt.Format(time.RFC3339))
			return err
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account id")
	cmd.Flags().StringVar(&category, "category", "", "document requirement key, e.g. businessPlan")
	cmd.Flags().StringVar(&description, "description", "", "short description")
	cmd.Flags().StringVar(&expiry, "expires", "", "expiry date, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag, may be repeated")
	cmd.Flags().BoolVar(&confidential, "confidential", false, "mark the document confidential")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
