package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/xmeta/internal/resource"
)

// ShowResult describes a file and its well-known metadata fields.
type ShowResult struct {
	Path           string            `json:"path"`
	Name           string            `json:"name"`
	Kind           string            `json:"kind"`
	Size           int64             `json:"size"`
	Readable       bool              `json:"readable"`
	Writable       bool              `json:"writable"`
	Modified       *time.Time        `json:"modified,omitempty"`
	Comment        string            `json:"comment"`
	WhereFroms     []string          `json:"where_froms,omitempty"`
	DownloadedDate *time.Time        `json:"downloaded_date,omitempty"`
	RunCount       *int              `json:"run_count,omitempty"`
	LastRun        *time.Time        `json:"last_run,omitempty"`
	Provenance     *ProvenanceResult `json:"provenance,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <path>",
		Short:         "Describe a file and its metadata fields",
		Args:          pathArgs(1, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, ref string, cmd *cobra.Command) error {
	e, err := opts.open(cmd)
	if err != nil {
		return err
	}

	path, err := e.store.Resolve(ref)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot resolve path", err)
	}

	result := ShowResult{
		Path:     path,
		Name:     resource.DisplayName(path),
		Kind:     kindOf(path),
		Readable: resource.IsReadable(path),
		Writable: resource.IsWritable(path),
	}
	if result.Kind == "directory" {
		result.Size = resource.DirectorySize(path)
	} else {
		result.Size = resource.Size(path)
	}
	if mod, ok := resource.ModTime(path); ok {
		result.Modified = &mod
	}

	before, err := inspect(e, path)
	if err != nil {
		return err
	}
	result.Comment = before.Comment
	result.WhereFroms = before.WhereFroms
	result.DownloadedDate = before.DownloadedDate
	if result.DownloadedDate == nil {
		if when, ok := e.accessors.DownloadedDate(path); ok {
			result.DownloadedDate = &when
		}
	}
	result.RunCount = before.RunCount
	result.LastRun = before.LastRun

	if p, ok, err := e.accessors.LookupProvenance(path); err != nil {
		logSkipped(e, "provenance", path, err)
	} else if ok {
		pr := provenanceResult(p)
		result.Provenance = &pr
	}

	if e.out.JSON() {
		return e.out.Success(result)
	}
	printShow(e.out, result)
	return nil
}

func kindOf(path string) string {
	switch {
	case resource.IsSymbolicLink(path):
		return "symlink"
	case resource.IsDirectory(path):
		return "directory"
	case resource.IsRegularFile(path):
		return "file"
	default:
		return "other"
	}
}

func printShow(f *OutputFormatter, r ShowResult) {
	w := f.Writer
	fmt.Fprintf(w, "%s (%s, %d bytes)\n", r.Name, r.Kind, r.Size)
	fmt.Fprintf(w, "  path:     %s\n", r.Path)
	fmt.Fprintf(w, "  access:   readable=%t writable=%t\n", r.Readable, r.Writable)
	if r.Modified != nil {
		fmt.Fprintf(w, "  modified: %s\n", r.Modified.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "  comment:  %s\n", r.Comment)
	if r.WhereFroms != nil {
		fmt.Fprintf(w, "  from:     %s\n", strings.Join(r.WhereFroms, ", "))
	}
	if r.DownloadedDate != nil {
		fmt.Fprintf(w, "  fetched:  %s\n", r.DownloadedDate.Format(time.RFC3339Nano))
	}
	if r.RunCount != nil {
		fmt.Fprintf(w, "  runs:     %d\n", *r.RunCount)
	}
	if r.LastRun != nil {
		fmt.Fprintf(w, "  last run: %s\n", r.LastRun.Format(time.RFC3339Nano))
	}
	if r.Provenance != nil {
		fmt.Fprintf(w, "  stamped:  %s by %s (%s)\n",
			r.Provenance.At.Format(time.RFC3339Nano), r.Provenance.Tool, r.Provenance.ID)
	}
}
