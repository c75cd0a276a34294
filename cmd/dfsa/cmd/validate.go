package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/completion"
	"github.com/dmitrymomot/onboarding/core/form"
	"github.com/dmitrymomot/onboarding/core/logger"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/validator"
)

type recordFlags struct {
	activity string
	file     string
	format   string
	stage    string
	today    string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	activityFlag(cmd, &f.activity)
	cmd.Flags().StringVarP(&f.file, "file", "f", "", `application record file (json, yaml or toml), "-" for stdin`)
	cmd.Flags().StringVar(&f.format, "format", "", "input format, defaults to the file extension")
	cmd.Flags().StringVar(&f.stage, "stage", "", "company stage: startup, growth, mature or enterprise")
	_ = cmd.MarkFlagRequired("file")
}

func (f *recordFlags) load(cmd *cobra.Command) (*schema.Schema, schema.Record, error) {
	a, err := pathway.ParseActivityType(f.activity)
	if err != nil {
		return nil, nil, err
	}
	s, err := pathway.Select(a)
	if err != nil {
		return nil, nil, err
	}
	record, err := readRecord(f.file, f.format, cmd.InOrStdin())
	if err != nil {
		return nil, nil, err
	}
	return s, record, nil
}

func (f *recordFlags) formOptions() ([]form.Option, error) {
	var opts []form.Option
	if f.stage != "" {
		opts = append(opts, form.WithStage(f.stage))
	}
	if f.today != "" {
		t, ok := validator.ParseDate(f.today)
		if !ok {
			return nil, fmt.Errorf("invalid --today %q, expected YYYY-MM-DD", f.today)
		}
		opts = append(opts, form.WithToday(t))
	}
	return opts, nil
}

func newValidateCmd(o *options) *cobra.Command {
	var (
		flags  recordFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an application record",
		Long: `Validate an application record against the pathway schema of its activity.

All failures are reported at once, keyed by field path. The command exits
with status 1 when the record is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			s, record, err := flags.load(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.formOptions()
			if err != nil {
				return err
			}
			res, err := form.Validate(s, record, opts...)
			if err != nil {
				return err
			}
			o.log.DebugContext(cmd.Context(), "record validated",
				logger.Activity(flags.activity),
				logger.ErrorCount(len(res.Errors)),
				logger.Elapsed(start))

			out := cmd.OutOrStdout()
			if asJSON {
				err = writeJSON(out, map[string]any{"isValid": res.Valid, "errors": res.Errors})
			} else {
				err = printResult(out, res)
			}
			if err != nil {
				return err
			}
			if !res.Valid {
				return ErrInvalid
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.today, "today", "", "reference date for date rules, YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newScoreCmd(o *options) *cobra.Command {
	var (
		flags  recordFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show how complete an application record is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, record, err := flags.load(cmd)
			if err != nil {
				return err
			}
			var opts []completion.Option
			if flags.stage != "" {
				opts = append(opts, completion.WithStage(flags.stage))
			}
			r := completion.Evaluate(s, record, opts...)
			o.log.DebugContext(cmd.Context(), "record scored", logger.Activity(flags.activity), logger.Score(r.Score))

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, r)
			}

			fmt.Fprintf(out, "%s %d%% (%d of %d mandatory fields)\n",
				titleStyle.Render("Completion:"), r.Score, r.Completed, r.Total)
			t := newTable("Section", "Score", "Completed")
			for _, sec := range r.Sections {
				t.Row(sec.Title, strconv.Itoa(sec.Score)+"%", fmt.Sprintf("%d/%d", sec.Completed, sec.Total))
			}
			fmt.Fprintln(out, t.Render())
			if len(r.Missing) > 0 {
				fmt.Fprintln(out, titleStyle.Render("Missing:"))
				for _, name := range r.Missing {
					fmt.Fprintln(out, "  - "+name)
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printResult(w io.Writer, res form.Result) error {
	if res.Valid {
		_, err := fmt.Fprintln(w, okStyle.Render("Valid:")+" the application passes every rule")
		return err
	}

	fmt.Fprintf(w, "%s %d field(s) need attention\n", failStyle.Render("Invalid:"), len(res.Errors))
	t := newTable("Field", "Message")
	for _, path := range slices.Sorted(maps.Keys(res.Errors)) {
		t.Row(path, res.Errors[path])
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
