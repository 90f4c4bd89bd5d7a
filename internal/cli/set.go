package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/xmeta/internal/attrerr"
	"github.com/roach88/xmeta/internal/fixed"
	"github.com/roach88/xmeta/internal/structured"
)

// SetResult reports a written attribute.
type SetResult struct {
	Path string `json:"path"`
	Key  string `json:"key"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "set <path> <key> <value>",
		Short: "Write an attribute",
		Long: `Write an attribute, replacing any previous value.

--type selects how <value> is stored:
  string      a structured string (default)
  json        a JSON document stored as a structured value
  raw         hex-encoded bytes stored as is
  <layout>    a fixed-width value, one of:
              ` + strings.Join(fixed.Names(), ", ") + `

Date layouts take RFC 3339 text or "now".`,
		Args:          pathArgs(3, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, args[0], args[1], args[2], valueType, cmd)
		},
	}

	cmd.Flags().StringVarP(&valueType, "type", "t", TypeString, "value type")

	return cmd
}

func runSet(opts *RootOptions, ref, key, text, valueType string, cmd *cobra.Command) error {
	e, err := opts.open(cmd)
	if err != nil {
		return err
	}

	size, err := writeValue(e, ref, key, text, valueType)
	if err != nil {
		return err
	}

	if e.out.JSON() {
		return e.out.Success(SetResult{Path: ref, Key: key, Type: valueType, Size: size})
	}
	fmt.Fprintf(e.out.Writer, "wrote %d bytes to %s\n", size, key)
	return nil
}

// writeValue stores text under key and returns the number of bytes written.
func writeValue(e *env, ref, key, text, valueType string) (int, error) {
	var data []byte
	switch valueType {
	case TypeString, TypeJSON:
		var v structured.Value = structured.String(text)
		if valueType == TypeJSON {
			parsed, err := parseJSONValue(text)
			if err != nil {
				return 0, attrerr.EncodeFailure(ref, key, err)
			}
			v = parsed
		}
		encoded, err := structured.Marshal(v)
		if err != nil {
			return 0, attrerr.EncodeFailure(ref, key, err)
		}
		data = encoded
	case TypeRaw:
		decoded, err := hex.DecodeString(text)
		if err != nil {
			return 0, attrerr.EncodeFailure(ref, key, err)
		}
		data = decoded
	default:
		c, ok := fixed.Lookup(valueType)
		if !ok {
			return 0, unknownType(valueType, TypeString, TypeJSON, TypeRaw)
		}
		if err := fixed.SetText(e.store, ref, key, c, text); err != nil {
			return 0, err
		}
		return c.Size(), nil
	}

	if err := e.store.SetRaw(ref, key, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
