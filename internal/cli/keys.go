package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// KeysResult lists the attribute keys of a file.
type KeysResult struct {
	Path string   `json:"path"`
	Keys []string `json:"keys"`
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "keys <path>",
		Short:         "List a file's attribute keys",
		Args:          pathArgs(1, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			keys, err := e.store.ListKeys(args[0])
			if err != nil {
				return err
			}
			if e.out.JSON() {
				return e.out.Success(KeysResult{Path: args[0], Keys: keys})
			}
			for _, k := range keys {
				fmt.Fprintln(e.out.Writer, k)
			}
			return nil
		},
	}

	return cmd
}
