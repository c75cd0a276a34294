package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/pathway"
)

func newSampleCmd() *cobra.Command {
	var activity, format string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a complete example application for an activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := pathway.ParseActivityType(activity)
			if err != nil {
				return err
			}
			record, err := pathway.Example(a)
			if err != nil {
				return err
			}
			return writeRecord(cmd.OutOrStdout(), record, format)
		},
	}
	activityFlag(cmd, &activity)
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml or toml")
	return cmd
}
