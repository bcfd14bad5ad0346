package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/objstore/internal/model"
)

// ListResult is the output of the list command.
type ListResult struct {
	File string   `json:"file" yaml:"file"`
	Kind string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Keys []string `json:"keys" yaml:"keys"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entity keys in the store file",
		Long: `List the keys of every entity the store file reloads to, in sorted order.

Use --kind to restrict the listing to one entity kind.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, kind, cmd)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only list entities of this kind")

	return cmd
}

func runList(opts *RootOptions, kind string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if kind != "" {
		if _, ok := model.Lookup(kind); !ok {
			return commandError(formatter, ErrCodeUnknownKind,
				fmt.Sprintf("unknown kind %q: must be one of %v", kind, model.Kinds()), nil)
		}
	}

	s, err := loadStore(opts, formatter)
	if err != nil {
		return err
	}

	all := s.All()
	result := ListResult{File: opts.File, Kind: kind, Keys: []string{}}
	for _, key := range slices.Sorted(maps.Keys(all)) {
		if kind != "" && all[key].Kind() != kind {
			continue
		}
		result.Keys = append(result.Keys, key)
	}

	if formatter.Structured() {
		return formatter.Success(result)
	}

	if len(result.Keys) == 0 {
		fmt.Fprintln(formatter.Writer, "(no entities)")
		return nil
	}
	for _, key := range result.Keys {
		fmt.Fprintln(formatter.Writer, key)
	}
	return nil
}
