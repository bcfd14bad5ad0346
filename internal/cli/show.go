package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/objstore/internal/attr"
)

// ShowResult is the output of the show command.
type ShowResult struct {
	Key        string         `json:"key" yaml:"key"`
	Kind       string         `json:"kind" yaml:"kind"`
	Attributes map[string]any `json:"attributes" yaml:"attributes"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show the attributes of one entity",
		Long: `Show the attribute mapping of the entity stored under <key>, as it would be
written back by the store. Keys have the form <Kind>.<id>.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, key string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	s, err := loadStore(opts, formatter)
	if err != nil {
		return err
	}

	e, ok := s.Get(key)
	if !ok {
		return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("no entity with key %q in %s", key, opts.File), nil)
	}
	attrs := e.Attributes()

	if formatter.Structured() {
		return formatter.Success(ShowResult{
			Key:        key,
			Kind:       e.Kind(),
			Attributes: attrs.Plain(),
		})
	}

	fmt.Fprintf(formatter.Writer, "%s (%s)\n", key, e.Kind())
	for _, name := range attrs.SortedKeys() {
		text, err := attr.MarshalCanonical(attrs[name])
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("cannot print attribute %q", name), err)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", name, text)
	}
	return nil
}
