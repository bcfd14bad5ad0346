package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/roach88/objstore/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "yaml" | "text"
	File    string // backing file of the store
}

// EnvConfig holds defaults taken from the environment. Flags override them.
type EnvConfig struct {
	File   string `env:"OBJSTORE_FILE" envDefault:"file.json"`
	Format string `env:"OBJSTORE_FORMAT" envDefault:"text"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// LoadEnvConfig reads EnvConfig from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewRootCommand creates the root command for the objstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cfg, envErr := LoadEnvConfig()
	if envErr != nil {
		cfg = EnvConfig{File: "file.json", Format: "text"}
	}

	cmd := &cobra.Command{
		Use:   "objstore",
		Short: "Inspect an object store file",
		Long: `Inspect the JSON file an object store persists its entities to.

Commands reload the file the same way the store does: entries that cannot
be decoded are skipped and entries with bad attributes are repaired. The
file itself is never modified.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return NewExitError(ExitCommandError, envErr.Error())
			}
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", cfg.File, "store file (env OBJSTORE_FILE)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// Execute runs the root command with args and returns the process exit
// code. Errors a command already printed through its formatter are not
// written to stderr a second time.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil && !IsReported(err) {
		fmt.Fprintln(stderr, err)
	}
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting structured output
		Verbose:   opts.Verbose,
	}
}

// newLogger logs store diagnostics to w in verbose mode and discards them
// otherwise.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	if !opts.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadStore creates a store over opts.File and reloads it. Failures are
// printed through f and returned as command errors.
func loadStore(opts *RootOptions, f *OutputFormatter) (*store.Store, error) {
	s := store.New(opts.File, store.WithLogger(newLogger(opts, f.GetErrWriter())))
	if err := s.Reload(); err != nil {
		if errors.Is(err, store.ErrMalformedDocument) {
			return nil, commandError(f, ErrCodeMalformed, fmt.Sprintf("%s is not a store document", opts.File), err)
		}
		return nil, commandError(f, ErrCodeReadFailed, fmt.Sprintf("cannot read %s", opts.File), err)
	}
	f.VerboseLog("Loaded %d entities from %s", s.Count(), opts.File)
	return s, nil
}
