package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/xmeta/internal/accessors"
	"github.com/roach88/xmeta/internal/attrerr"
	"github.com/roach88/xmeta/internal/fixed"
	"github.com/roach88/xmeta/internal/resource"
)

// StampComment is the comment every stamp writes.
const StampComment = "Manual"

// StampResult reports what a file carried before stamping and what was
// written.
type StampResult struct {
	Path           string       `json:"path"`
	Keys           []string     `json:"keys"`
	Comment        string       `json:"comment"`
	WhereFroms     []string     `json:"where_froms,omitempty"`
	DownloadedDate *time.Time   `json:"downloaded_date,omitempty"`
	RunCount       *int         `json:"run_count,omitempty"`
	LastRun        *time.Time   `json:"last_run,omitempty"`
	Stamped        StampWritten `json:"stamped"`
}

// StampWritten lists the values a stamp wrote.
type StampWritten struct {
	LastRun    time.Time        `json:"last_run"`
	RunCount   *int             `json:"run_count,omitempty"`
	Comment    string           `json:"comment"`
	Provenance ProvenanceResult `json:"provenance"`
}

// ProvenanceResult is the JSON form of a provenance record.
type ProvenanceResult struct {
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Tool string    `json:"tool"`
}

func provenanceResult(p accessors.Provenance) ProvenanceResult {
	return ProvenanceResult{ID: p.ID, At: p.At, Tool: p.Tool}
}

// NewStampCommand creates the stamp command.
func NewStampCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp <path> [int]",
		Short: "Print a file's metadata, then stamp it",
		Long: `Print the attribute keys and well-known metadata fields of a file,
then record the current time as its last run, the optional integer as its
run counter, a provenance record, and the comment "Manual".

An integer argument that does not parse is rejected before anything is
written.`,
		Args:          pathArgs(1, 1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStamp(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runStamp(opts *RootOptions, args []string, cmd *cobra.Command) error {
	e, err := opts.open(cmd)
	if err != nil {
		return err
	}

	ref := args[0]
	var count *int
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid run count %q", args[1]), err)
		}
		count = &n
	}

	path, err := e.store.Resolve(ref)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot resolve path", err)
	}
	if !resource.IsReadable(path) {
		return NewExitError(ExitCommandError, fmt.Sprintf("path is not readable: %s", path))
	}

	result, err := inspect(e, path)
	if err != nil {
		return err
	}

	written, err := stamp(e, path, opts.now(), count)
	if err != nil {
		return err
	}
	result.Stamped = written

	if e.out.JSON() {
		return e.out.Success(result)
	}
	printStamp(e.out, result)
	return nil
}

// inspect gathers what the file carries before it is stamped. Only the
// attribute listing may fail; the rest report what is readable.
func inspect(e *env, path string) (StampResult, error) {
	keys, err := e.store.ListKeys(path)
	if err != nil {
		return StampResult{}, err
	}

	result := StampResult{
		Path:    path,
		Keys:    keys,
		Comment: e.accessors.Comment(path),
	}
	if froms, ok := e.accessors.WhereFroms(path); ok {
		result.WhereFroms = make([]string, len(froms))
		for i, u := range froms {
			result.WhereFroms[i] = u.String()
		}
		if when, ok := e.accessors.DownloadedDate(path); ok {
			result.DownloadedDate = &when
		}
	}
	if n, err := e.accessors.RunCount(path); err == nil {
		result.RunCount = &n
	} else {
		logSkipped(e, "run count", path, err)
	}
	if at, err := e.accessors.LastRun(path); err == nil {
		t := at.Time()
		result.LastRun = &t
	} else {
		logSkipped(e, "last run", path, err)
	}
	return result, nil
}

func logSkipped(e *env, field, path string, err error) {
	if attrerr.IsNotFound(err) {
		return
	}
	e.logger.Debug("metadata unreadable, not shown", "field", field, "path", path, "error", err)
}

// stamp writes the stamp fields. The reported last run is the instant the
// Date layout holds, which may differ from now by less than a microsecond.
func stamp(e *env, path string, now time.Time, count *int) (StampWritten, error) {
	at := fixed.AbsoluteTimeOf(now)
	if err := e.accessors.SetLastRun(path, at); err != nil {
		return StampWritten{}, err
	}
	if count != nil {
		if err := e.accessors.SetRunCount(path, *count); err != nil {
			return StampWritten{}, err
		}
	}
	p, err := e.accessors.Stamp(path, ToolName, now)
	if err != nil {
		return StampWritten{}, err
	}
	if err := e.accessors.SetComment(path, StampComment); err != nil {
		return StampWritten{}, err
	}
	return StampWritten{
		LastRun:    at.Time(),
		RunCount:   count,
		Comment:    StampComment,
		Provenance: provenanceResult(p),
	}, nil
}

func printStamp(f *OutputFormatter, r StampResult) {
	w := f.Writer
	fmt.Fprintf(w, "Path: %s\n", r.Path)
	fmt.Fprintf(w, "xattributes: [%s]\n", strings.Join(r.Keys, ", "))
	fmt.Fprintf(w, "Comment: %s\n", r.Comment)
	if r.WhereFroms != nil {
		fmt.Fprintf(w, "Download source: [%s]\n", strings.Join(r.WhereFroms, ", "))
		if r.DownloadedDate != nil {
			fmt.Fprintf(w, "Date %s\n", r.DownloadedDate.Format(time.RFC3339Nano))
		}
	}
	if r.RunCount != nil {
		fmt.Fprintf(w, "Assigned int value %d\n", *r.RunCount)
	}
	if r.LastRun != nil {
		fmt.Fprintf(w, "Last run with current file: %s\n", r.LastRun.Format(time.RFC3339Nano))
	}
	fmt.Fprintf(w, "Stamped %s (provenance %s)\n", r.Stamped.LastRun.Format(time.RFC3339Nano), r.Stamped.Provenance.ID)
}
