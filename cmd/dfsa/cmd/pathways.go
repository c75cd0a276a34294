package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/pathway"
)

func newPathwaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pathways",
		Short: "List the activities and their pathways",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable("Activity", "Description", "Pathway", "Estimated time", "Questions", "Documents")
			for _, a := range pathway.ActivityTypes() {
				p, err := a.Pathway()
				if err != nil {
					return err
				}
				docs, err := pathway.RequiredDocuments(a)
				if err != nil {
					return err
				}
				est, err := pathway.EstimatedTime(a)
				if err != nil {
					return err
				}
				questions, err := pathway.QuestionCount(a)
				if err != nil {
					return err
				}
				t.Row(
					string(a),
					a.Label(),
					string(p),
					fmt.Sprintf("%d min", int(est.Minutes())),
					strconv.Itoa(questions),
					strconv.Itoa(len(docs)),
				)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
