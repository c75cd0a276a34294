package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding"
	"github.com/dmitrymomot/onboarding/core/apperror"
	"github.com/dmitrymomot/onboarding/core/logger"
)

// ErrInvalid is returned when a checked application does not validate.
// The failures have already been printed.
var ErrInvalid = errors.New("application is invalid")

type options struct {
	logLevel  string
	logFormat string
	log       *slog.Logger
}

// NewRoot builds the dfsa command tree.
func NewRoot() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "dfsa",
		Short: "DFSA onboarding rules engine",
		Long: `dfsa checks DFSA onboarding applications.

It selects the pathway schema for an activity, validates application
records, scores their completion and lists the documents each pathway
requires.

Activities:
  FINANCIAL_SERVICES        pathway A
  DNFBP                     pathway B
  CRYPTO_TOKEN              pathway C
  REGISTERED_AUDITOR        pathway D
  CRYPTO_TOKEN_RECOGNITION  pathway E`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := []logger.Option{
				logger.WithLevel(logger.ParseLevel(o.logLevel)),
				logger.WithOutput(cmd.ErrOrStderr()),
			}
			if o.logFormat == "json" {
				opts = append(opts, logger.WithJSONFormatter())
			}
			o.log = logger.New(opts...)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&o.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newPathwaysCmd(),
		newDocumentsCmd(o),
		newValidateCmd(o),
		newScoreCmd(o),
		newSampleCmd(),
		newSubmitCmd(o),
		newUploadCmd(o),
		newHealthCmd(o),
	)
	return root
}

// Execute runs the command line and reports errors on stderr.
func Execute() error {
	root := NewRoot()
	err := root.Execute()
	var ae *apperror.Error
	switch {
	case err == nil, errors.Is(err, ErrInvalid):
	case errors.As(err, &ae):
		fmt.Fprintf(os.Stderr, "Error: %s\n", onboarding.FormatError(err))
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func activityFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "activity", "a", "", "activity type, e.g. FINANCIAL_SERVICES")
	_ = cmd.MarkFlagRequired("activity")
}
