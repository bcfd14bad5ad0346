package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/objstore/internal/docschema"
)

// CheckResult is the output of the check command.
type CheckResult struct {
	File       string                `json:"file" yaml:"file"`
	Found      bool                  `json:"found" yaml:"found"`
	Loaded     int                   `json:"loaded" yaml:"loaded"`
	Repaired   []RepairedEntry       `json:"repaired,omitempty" yaml:"repaired,omitempty"`
	Skipped    []SkippedEntry        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Violations []docschema.Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// RepairedEntry is an entry the store loaded with substitute values.
type RepairedEntry struct {
	Key    string   `json:"key" yaml:"key"`
	Issues []string `json:"issues" yaml:"issues"`
}

// SkippedEntry is an entry the store could not load.
type SkippedEntry struct {
	Key   string `json:"key" yaml:"key"`
	Error string `json:"error" yaml:"error"`
}

// Problems counts everything check reports as a failure.
func (r CheckResult) Problems() int {
	return len(r.Repaired) + len(r.Skipped) + len(r.Violations)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the store file for entries that need repair",
		Long: `Check the store file against the entity schema and report every entry the
store would skip or repair on reload.

Exits with status 1 when any problem is found. A missing file has no
problems.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	result := CheckResult{File: opts.File}

	data, err := os.ReadFile(opts.File)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		formatter.VerboseLog("No store file at %s", opts.File)
		return outputCheck(formatter, result)
	case err != nil:
		return commandError(formatter, ErrCodeReadFailed, fmt.Sprintf("cannot read %s", opts.File), err)
	}
	result.Found = true

	violations, err := docschema.Validate(data)
	if err != nil {
		return commandError(formatter, ErrCodeMalformed, fmt.Sprintf("%s is not a store document", opts.File), err)
	}
	result.Violations = violations

	s, err := loadStore(opts, formatter)
	if err != nil {
		return err
	}
	report := s.LastReport()
	result.Loaded = len(report.Loaded)
	for _, r := range report.Repaired {
		entry := RepairedEntry{Key: r.Key}
		for _, issue := range r.Issues {
			entry.Issues = append(entry.Issues, issue.Error())
		}
		result.Repaired = append(result.Repaired, entry)
	}
	for _, sk := range report.Skipped {
		result.Skipped = append(result.Skipped, SkippedEntry{Key: sk.Key, Error: sk.Err.Error()})
	}

	return outputCheck(formatter, result)
}

func outputCheck(formatter *OutputFormatter, result CheckResult) error {
	problems := result.Problems()
	if problems == 0 {
		if formatter.Structured() {
			return formatter.Success(result)
		}
		if !result.Found {
			fmt.Fprintf(formatter.Writer, "✓ %s does not exist, nothing to check\n", result.File)
			return nil
		}
		fmt.Fprintf(formatter.Writer, "✓ %s: %d entities, no problems\n", result.File, result.Loaded)
		return nil
	}

	message := fmt.Sprintf("check found %d problem(s)", problems)
	if formatter.Structured() {
		if err := formatter.Failure(ErrCodeCheckFailed, message, result); err != nil {
			return err
		}
		return reportedError(ExitFailure, message, nil)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✗ %s: %d entities loaded, %d problem(s)\n", result.File, result.Loaded, problems)
	for _, sk := range result.Skipped {
		fmt.Fprintf(w, "  skipped  %s: %s\n", sk.Key, sk.Error)
	}
	for _, r := range result.Repaired {
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "  repaired %s: %s\n", r.Key, issue)
		}
	}
	for _, v := range result.Violations {
		fmt.Fprintf(w, "  schema   %s\n", v.Error())
	}
	return reportedError(ExitFailure, message, nil)
}
