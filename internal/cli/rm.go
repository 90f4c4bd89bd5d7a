package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RemoveResult reports a removed attribute.
type RemoveResult struct {
	Path string `json:"path"`
	Key  string `json:"key"`
}

// NewRemoveCommand creates the rm command. Removing an absent key succeeds.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm <path> <key>",
		Short:         "Remove an attribute",
		Args:          pathArgs(2, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			if err := e.store.RemoveRaw(args[0], args[1]); err != nil {
				return err
			}
			if e.out.JSON() {
				return e.out.Success(RemoveResult{Path: args[0], Key: args[1]})
			}
			fmt.Fprintf(e.out.Writer, "removed %s\n", args[1])
			return nil
		},
	}

	return cmd
}
