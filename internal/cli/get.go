package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/xmeta/internal/fixed"
	"github.com/roach88/xmeta/internal/structured"
)

// GetResult is an attribute value read by get.
type GetResult struct {
	Path  string `json:"path"`
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "get <path> <key>",
		Short: "Read an attribute",
		Long: `Read an attribute and print it.

--type selects how the stored bytes are read:
  structured  decode the structured envelope (default)
  diag        show the envelope in CBOR diagnostic notation
  raw         show the bytes as hex
  <layout>    decode a fixed-width value; see "xmeta set --help" for names`,
		Args:          pathArgs(2, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], args[1], valueType, cmd)
		},
	}

	cmd.Flags().StringVarP(&valueType, "type", "t", TypeStructured, "value type")

	return cmd
}

func runGet(opts *RootOptions, ref, key, valueType string, cmd *cobra.Command) error {
	e, err := opts.open(cmd)
	if err != nil {
		return err
	}

	result := GetResult{Path: ref, Key: key, Type: valueType}
	var text string

	switch valueType {
	case TypeStructured:
		v, err := structured.Get(e.store, ref, key)
		if err != nil {
			return err
		}
		if v == nil {
			return NewExitError(ExitFailure, fmt.Sprintf("%s is not set", key))
		}
		result.Value = jsonValue(v)
		text = formatValue(v)
	case TypeDiag:
		data, err := e.store.GetRaw(ref, key)
		if err != nil {
			return err
		}
		diag, err := structured.Diagnose(data)
		if err != nil {
			return WrapExitError(ExitFailure, "not a structured value", err)
		}
		result.Value = diag
		text = diag
	case TypeRaw:
		data, err := e.store.GetRaw(ref, key)
		if err != nil {
			return err
		}
		text = hex.EncodeToString(data)
		result.Value = text
	default:
		c, ok := fixed.Lookup(valueType)
		if !ok {
			return unknownType(valueType, TypeStructured, TypeDiag, TypeRaw)
		}
		text, err = fixed.GetText(e.store, ref, key, c)
		if err != nil {
			return err
		}
		result.Value = text
	}

	if e.out.JSON() {
		return e.out.Success(result)
	}
	fmt.Fprintln(e.out.Writer, text)
	return nil
}

func unknownType(name string, builtin ...string) error {
	return NewExitError(ExitCommandError, fmt.Sprintf("unknown type %q: use one of %s or a layout (%s)",
		name, strings.Join(builtin, ", "), strings.Join(fixed.Names(), ", ")))
}
