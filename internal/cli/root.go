package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/xmeta/internal/accessors"
	"github.com/roach88/xmeta/internal/config"
	"github.com/roach88/xmeta/internal/xattr"
)

// ToolName is recorded in provenance stamps.
const ToolName = "xmeta"

// RootOptions holds global flags for all commands, plus the seams tests
// use to swap out the OS, the clock and the ID source.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Syscalls overrides the kernel attribute calls (for testing).
	Syscalls xattr.Syscalls

	// Clock overrides time.Now for stamps (for testing).
	Clock func() time.Time

	// IDs overrides the provenance ID generator (for testing).
	IDs accessors.IDGenerator

	cfg    config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// NewRootCommand creates the root command for the xmeta CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command bound to opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xmeta",
		Short: "xmeta - typed extended-attribute metadata",
		Long: `Read and write typed metadata stored in a file's extended attributes.

Values are either fixed-width scalars (integers, floats, booleans, dates)
or structured values (strings, sequences, mappings, dates) stored in a
self-describing binary envelope.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return NewExitError(ExitCommandError, "missing command: try \"xmeta stamp <path>\"")
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config (default $"+config.EnvVar+")")

	// Add subcommands
	cmd.AddCommand(NewStampCommand(opts))
	cmd.AddCommand(NewKeysCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// setup loads configuration and configures logging.
func (o *RootOptions) setup(stderr io.Writer) error {
	cfg, err := config.Load(config.Path(o.ConfigPath))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o.cfg = cfg

	level, _ := cfg.Level()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// env holds what a command needs to touch attributes.
type env struct {
	store     *loggedStore
	accessors *accessors.Accessors
	logger    *slog.Logger
	out       *OutputFormatter
}

// open builds the command environment. Commands executed without the root
// command's pre-run (as in tests) get their configuration loaded here.
func (o *RootOptions) open(cmd *cobra.Command) (*env, error) {
	if o.logger == nil {
		if err := o.setup(cmd.ErrOrStderr()); err != nil {
			return nil, err
		}
	}
	store := &loggedStore{store: o.store(), logger: o.logger}
	return &env{
		store:     store,
		accessors: o.accessors(store),
		logger:    o.logger,
		out:       o.formatter(cmd),
	}, nil
}

func (o *RootOptions) store() *xattr.Store {
	var opts []xattr.Option
	if o.Syscalls != nil {
		opts = append(opts, xattr.WithSyscalls(o.Syscalls))
	}
	if o.cfg.NoFollow {
		opts = append(opts, xattr.WithNoFollow())
	}
	return xattr.New(opts...)
}

func (o *RootOptions) accessors(store accessors.Store) *accessors.Accessors {
	opts := []accessors.Option{accessors.WithLogger(o.logger)}
	if o.IDs != nil {
		opts = append(opts, accessors.WithIDGenerator(o.IDs))
	}
	return accessors.New(store, o.cfg.Keys, opts...)
}

func (o *RootOptions) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// pathArgs requires a path argument followed by up to extra optional ones.
// A missing path is a command error.
func pathArgs(required, extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return NewExitError(ExitCommandError, "missing path argument")
		}
		if len(args) < required {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("%s requires %d arguments, got %d", cmd.Name(), required, len(args)))
		}
		if len(args) > required+extra {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("%s accepts at most %d arguments, got %d", cmd.Name(), required+extra, len(args)))
		}
		return nil
	}
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return RunWithOptions(&RootOptions{}, args, stdout, stderr)
}

// RunWithOptions executes the CLI bound to opts.
func RunWithOptions(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommandWithOptions(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		formatter := &OutputFormatter{Format: opts.Format, Writer: stdout, ErrWriter: stderr}
		formatter.Error(err)
	}
	return GetExitCode(err)
}
