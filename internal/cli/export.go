package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/objstore/internal/sqlexport"
)

// ExportResult is the output of the export command.
type ExportResult struct {
	File       string               `json:"file" yaml:"file"`
	Database   string               `json:"database" yaml:"database"`
	Entities   int                  `json:"entities" yaml:"entities"`
	Rows       int                  `json:"rows" yaml:"rows"`       // rows in the database after the export
	Exports    int                  `json:"exports" yaml:"exports"` // exports recorded so far, this one included
	Verified   bool                 `json:"verified" yaml:"verified"`
	Mismatches []sqlexport.Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Verify bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <db>",
		Short: "Export the store to a SQLite database",
		Long: `Reload the store file and write every entity into the SQLite database at
<db>, creating it if needed. Existing rows with the same key are replaced.

With --verify, every exported row is read back and compared with the
store. Exits with status 1 when any row differs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "read every row back and compare it with the store")

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	ctx := cmd.Context()

	s, err := loadStore(rootOpts, formatter)
	if err != nil {
		return err
	}

	db, err := sqlexport.Open(dbPath)
	if err != nil {
		return commandError(formatter, ErrCodeExportFailed, fmt.Sprintf("cannot open %s", dbPath), err)
	}
	defer db.Close()

	entities := s.All()
	n, err := db.Export(ctx, s.Path(), entities, s.Now())
	if err != nil {
		return commandError(formatter, ErrCodeExportFailed, fmt.Sprintf("cannot export to %s", dbPath), err)
	}
	formatter.VerboseLog("Wrote %d rows to %s", n, dbPath)

	result := ExportResult{File: rootOpts.File, Database: dbPath, Entities: n}
	if result.Rows, err = db.Count(ctx); err != nil {
		return commandError(formatter, ErrCodeExportFailed, fmt.Sprintf("cannot read %s", dbPath), err)
	}
	if result.Exports, err = db.ExportCount(ctx); err != nil {
		return commandError(formatter, ErrCodeExportFailed, fmt.Sprintf("cannot read %s", dbPath), err)
	}

	if opts.Verify {
		if result.Mismatches, err = db.Verify(ctx, entities); err != nil {
			return commandError(formatter, ErrCodeExportFailed, fmt.Sprintf("cannot verify %s", dbPath), err)
		}
		result.Verified = len(result.Mismatches) == 0
		formatter.VerboseLog("Verified %d rows, %d mismatched", n, len(result.Mismatches))
	}

	return outputExport(formatter, result)
}

func outputExport(formatter *OutputFormatter, result ExportResult) error {
	if len(result.Mismatches) > 0 {
		message := fmt.Sprintf("verify found %d mismatched row(s)", len(result.Mismatches))
		if formatter.Structured() {
			if err := formatter.Failure(ErrCodeVerifyFailed, message, result); err != nil {
				return err
			}
			return reportedError(ExitFailure, message, nil)
		}
		w := formatter.Writer
		fmt.Fprintf(w, "✗ Exported %d entities to %s, %d row(s) differ\n", result.Entities, result.Database, len(result.Mismatches))
		for _, m := range result.Mismatches {
			fmt.Fprintf(w, "  %s: %s\n", m.Key, m.Reason)
		}
		return reportedError(ExitFailure, message, nil)
	}

	if formatter.Structured() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Exported %d entities from %s to %s\n", result.Entities, result.File, result.Database)
	if result.Verified {
		fmt.Fprintf(formatter.Writer, "  verified %d rows (%d in database, export #%d)\n", result.Entities, result.Rows, result.Exports)
	}
	return nil
}
