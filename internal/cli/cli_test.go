package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xmeta/internal/testutil"
	"github.com/roach88/xmeta/internal/xattr"
)

const (
	samplePath = "testdata/sample.txt"
	configPath = "testdata/config.yaml"
)

var stampStart = time.Date(2017, time.January, 24, 12, 0, 0, 0, time.UTC)

// harness runs the CLI against an in-memory attribute table bound to the
// checked-in sample file.
type harness struct {
	t      *testing.T
	opts   *RootOptions
	fake   *xattr.Fake
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := xattr.NewFake()
	fake.AddFile(samplePath)
	return &harness{
		t:    t,
		fake: fake,
		opts: &RootOptions{
			Syscalls: fake,
			Clock:    testutil.NewSteppingClock(stampStart, time.Second).Now,
			IDs:      testutil.NewFixedIDGenerator("run-1"),
		},
	}
}

func (h *harness) run(args ...string) int {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	return RunWithOptions(h.opts, append([]string{"--config", configPath}, args...), &h.stdout, &h.stderr)
}

func (h *harness) mustRun(args ...string) {
	h.t.Helper()
	code := h.run(args...)
	require.Equal(h.t, ExitSuccess, code, "stdout: %s\nstderr: %s", h.stdout.String(), h.stderr.String())
}

func (h *harness) response() CLIResponse {
	h.t.Helper()
	var resp CLIResponse
	require.NoError(h.t, json.Unmarshal(h.stdout.Bytes(), &resp), h.stdout.String())
	return resp
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestStamp_Fresh(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--format", "json", "stamp", samplePath, "42")
	golden(t).Assert(t, "stamp_fresh", h.stdout.Bytes())

	stored, ok := h.fake.Peek(samplePath, "user.test.comment")
	require.True(t, ok)
	assert.NotEmpty(t, stored)
}

func TestStamp_Second(t *testing.T) {
	h := newHarness(t)
	h.mustRun("stamp", samplePath, "42")
	h.mustRun("--format", "json", "stamp", samplePath)
	golden(t).Assert(t, "stamp_second", h.stdout.Bytes())
}

func TestStamp_TextOutput(t *testing.T) {
	h := newHarness(t)
	h.mustRun("stamp", samplePath, "7")
	h.mustRun("stamp", samplePath)

	out := h.stdout.String()
	assert.Contains(t, out, "Path: testdata/sample.txt\n")
	assert.Contains(t, out, "Comment: Manual\n")
	assert.Contains(t, out, "Assigned int value 7\n")
	assert.Contains(t, out, "Last run with current file: 2017-01-24T12:00:00Z\n")
	assert.NotContains(t, out, "Download source")
}

func TestStamp_PrintsDownloadSource(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", "--type", "json", samplePath, "user.test.wherefroms", `["https://example.com/file"]`)

	h.mustRun("stamp", samplePath)
	assert.Contains(t, h.stdout.String(), "Download source: [https://example.com/file]\n")
}

func TestStamp_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing path", []string{"stamp"}, "missing path argument"},
		{"unreadable path", []string{"stamp", "testdata/does-not-exist"}, "not readable"},
		{"bad count", []string{"stamp", samplePath, "twelve"}, "invalid run count"},
		{"too many args", []string{"stamp", samplePath, "1", "2"}, "at most 2 arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Equal(t, ExitCommandError, h.run(tt.args...))
			assert.Contains(t, h.stderr.String(), tt.want)

			size, err := h.fake.List(samplePath, nil, false)
			require.NoError(t, err)
			assert.Zero(t, size, "nothing may be written")
		})
	}
}

func TestStamp_JSONError(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitCommandError, h.run("--format", "json", "stamp"))

	resp := h.response()
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "command-error", resp.Error.Code)
	assert.Empty(t, h.stderr.String())
}

func TestStamp_VerboseLogsAttributeCalls(t *testing.T) {
	h := newHarness(t)
	h.mustRun("-v", "stamp", samplePath, "1")

	logs := h.stderr.String()
	assert.Contains(t, logs, "level=DEBUG")
	assert.Contains(t, logs, `msg="set attribute"`)
	assert.Contains(t, logs, "key=user.test.count size=8")
}

func TestKeys(t *testing.T) {
	h := newHarness(t)
	h.fake.Poke(samplePath, "user.test.one", []byte("1"))
	h.fake.Poke(samplePath, "user.test.two", []byte("2"))

	h.mustRun("--format", "json", "keys", samplePath)
	golden(t).Assert(t, "keys", h.stdout.Bytes())

	h.mustRun("keys", samplePath)
	assert.Equal(t, "user.test.one\nuser.test.two\n", h.stdout.String())
}

func TestKeys_SubcommandDirect(t *testing.T) {
	fake := xattr.NewFake()
	fake.AddFile(samplePath)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath, Syscalls: fake}
	cmd := NewKeysCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{samplePath})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, buf.String())
}

func TestGetSet_Structured(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", "--type", "json", samplePath, "user.test.doc", `{"b":[1,2.5,"x"],"a":true}`)

	h.mustRun("--format", "json", "get", samplePath, "user.test.doc")
	golden(t).Assert(t, "get_json", h.stdout.Bytes())

	h.mustRun("get", samplePath, "user.test.doc")
	assert.Equal(t, `{"a":true,"b":[1,2.5,"x"]}`+"\n", h.stdout.String())
}

func TestGetSet_String(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", samplePath, "user.test.note", "hello")

	h.mustRun("get", samplePath, "user.test.note")
	assert.Equal(t, "\"hello\"\n", h.stdout.String())

	h.mustRun("get", "--type", "diag", samplePath, "user.test.note")
	assert.Equal(t, "55799(\"hello\")\n", h.stdout.String())
}

func TestGetSet_Fixed(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--format", "json", "set", "--type", "int32", samplePath, "user.test.n", "-7")

	resp := h.response()
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{
		"path": samplePath, "key": "user.test.n", "type": "int32", "size": float64(4),
	}, resp.Data)

	h.mustRun("get", "--type", "int32", samplePath, "user.test.n")
	assert.Equal(t, "-7\n", h.stdout.String())

	assert.Equal(t, ExitFailure, h.run("--format", "json", "get", "--type", "int64", samplePath, "user.test.n"))
	resp = h.response()
	require.NotNil(t, resp.Error)
	assert.Equal(t, "size-mismatch", resp.Error.Code)
}

func TestGetSet_Raw(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", "--type", "raw", samplePath, "user.test.blob", "00ff10")

	stored, ok := h.fake.Peek(samplePath, "user.test.blob")
	require.True(t, ok)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, stored)

	h.mustRun("get", "--type", "raw", samplePath, "user.test.blob")
	assert.Equal(t, "00ff10\n", h.stdout.String())

	assert.Equal(t, ExitFailure, h.run("get", samplePath, "user.test.blob"))
	assert.Contains(t, h.stderr.String(), "decode-failure")
}

func TestSet_EncodeFailures(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		value string
	}{
		{"bad json", "json", "{"},
		{"json null", "json", "null"},
		{"trailing json", "json", "1 2"},
		{"bad hex", "raw", "zz"},
		{"int out of range", "int8", "300"},
		{"bad date", "date", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Equal(t, ExitFailure, h.run("--format", "json", "set", "--type", tt.typ, samplePath, "user.test.x", tt.value))
			resp := h.response()
			require.NotNil(t, resp.Error)
			assert.Equal(t, "encode-failure", resp.Error.Code)

			_, ok := h.fake.Peek(samplePath, "user.test.x")
			assert.False(t, ok)
		})
	}
}

func TestUnknownType(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitCommandError, h.run("set", "--type", "complex128", samplePath, "user.test.x", "1"))
	assert.Contains(t, h.stderr.String(), "unknown type")

	assert.Equal(t, ExitCommandError, h.run("get", "--type", "complex128", samplePath, "user.test.x"))
}

func TestGet_Absent(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitFailure, h.run("get", samplePath, "user.test.none"))
	assert.Contains(t, h.stderr.String(), "not set")

	assert.Equal(t, ExitFailure, h.run("--format", "json", "get", "--type", "raw", samplePath, "user.test.none"))
	resp := h.response()
	require.NotNil(t, resp.Error)
	assert.Equal(t, "read-failure", resp.Error.Code)
	assert.NotZero(t, resp.Error.Errno)
}

func TestRemove(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set", samplePath, "user.test.note", "bye")

	h.mustRun("rm", samplePath, "user.test.note")
	assert.Equal(t, "removed user.test.note\n", h.stdout.String())
	_, ok := h.fake.Peek(samplePath, "user.test.note")
	assert.False(t, ok)

	h.mustRun("rm", samplePath, "user.test.note")
}

func TestUnknownFileIsReadFailure(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitFailure, h.run("--format", "json", "keys", "/virtual/nowhere"))
	resp := h.response()
	require.NotNil(t, resp.Error)
	assert.Equal(t, "read-failure", resp.Error.Code)
}

func TestUnresolvedReference(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ExitFailure, h.run("--format", "json", "keys", "https://example.com/file"))
	resp := h.response()
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unresolved-resource", resp.Error.Code)
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	h.mustRun("stamp", samplePath, "3")

	h.mustRun("--format", "json", "show", samplePath)
	var resp struct {
		Status string     `json:"status"`
		Data   ShowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	got := resp.Data
	assert.Equal(t, "sample.txt", got.Name)
	assert.Equal(t, "file", got.Kind)
	assert.Equal(t, int64(len("sample\n")), got.Size)
	assert.True(t, got.Readable)
	assert.NotNil(t, got.Modified)
	assert.Equal(t, StampComment, got.Comment)
	require.NotNil(t, got.RunCount)
	assert.Equal(t, 3, *got.RunCount)
	require.NotNil(t, got.LastRun)
	assert.True(t, stampStart.Equal(*got.LastRun))
	require.NotNil(t, got.Provenance)
	assert.Equal(t, "run-1", got.Provenance.ID)
	assert.Equal(t, ToolName, got.Provenance.Tool)

	h.mustRun("show", samplePath)
	assert.True(t, strings.HasPrefix(h.stdout.String(), "sample.txt (file, 7 bytes)\n"))
}

func TestStamp_ReportsStoredLastRun(t *testing.T) {
	h := newHarness(t)
	h.opts.Clock = testutil.NewSteppingClock(time.Date(2026, 10, 14, 12, 0, 0, 123456789, time.UTC), 987654321*time.Nanosecond).Now

	decode := func() StampResult {
		var resp struct {
			Data StampResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &resp))
		return resp.Data
	}

	h.mustRun("--format", "json", "stamp", samplePath)
	first := decode()
	h.mustRun("--format", "json", "stamp", samplePath)
	second := decode()

	require.NotNil(t, second.LastRun)
	assert.True(t, first.Stamped.LastRun.Equal(*second.LastRun),
		"stamped %v, read back %v", first.Stamped.LastRun, *second.LastRun)
	assert.Less(t, first.Stamped.LastRun.Sub(first.Stamped.Provenance.At).Abs(), time.Microsecond)
}
