package jj

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeJJ writes a shell script standing in for the jj binary.
func fakeJJ(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake jj needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "jj")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700)) //nolint:gosec // test script must be executable
	return path
}

func TestRealExecutor_NewRealExecutor(t *testing.T) {
	e := NewRealExecutor("", "/some/path")
	require.Equal(t, "jj", e.bin)
	require.Equal(t, "/some/path", e.workDir)
}

func TestRealExecutor_ShowPassesFormatAndRevision(t *testing.T) {
	bin := fakeJJ(t, `printf '%s|' "$@"; printf 'COLUMNS=%s' "$COLUMNS"`)
	e := NewRealExecutor(bin, t.TempDir())

	out, err := e.Show(context.Background(), Head{ChangeID: "kx", CommitID: "abc"}, FormatGit, 120)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "show|-r|abc|"), out)
	require.Contains(t, out, "--color|always|")
	require.Contains(t, out, "--git|")
	require.NotContains(t, out, "COLUMNS=120", "width only matters to external tools")

	out, err = e.Show(context.Background(), Head{}, ToolFormat("difft"), 120)
	require.NoError(t, err)
	require.Contains(t, out, "-r|@|")
	require.Contains(t, out, "--tool|difft|")
	require.Contains(t, out, "COLUMNS=120")
}

func TestRealExecutor_ShowKeepsOutputVerbatim(t *testing.T) {
	bin := fakeJJ(t, `printf '\033[1mCommit\033[0m\r\n\n'`)
	e := NewRealExecutor(bin, "")

	out, err := e.Show(context.Background(), Head{}, FormatColorWords, 80)
	require.NoError(t, err)
	require.Equal(t, "\x1b[1mCommit\x1b[0m\r\n\n", out)
}

func TestRealExecutor_ShowRejectsInvalidUTF8(t *testing.T) {
	bin := fakeJJ(t, `printf 'diff\n\377\376 bytes\n'`)
	e := NewRealExecutor(bin, "")

	out, err := e.Show(context.Background(), Head{ChangeID: "kx", CommitID: "abc"}, FormatGit, 80)
	require.ErrorIs(t, err, ErrInvalidOutput)
	require.Contains(t, err.Error(), "abc")
	require.Empty(t, out)
}

func TestRealExecutor_Root(t *testing.T) {
	bin := fakeJJ(t, `echo "/home/me/repo"`)
	root, err := NewRealExecutor(bin, "").Root(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/home/me/repo", root)
}

func TestRealExecutor_Log(t *testing.T) {
	bin := fakeJJ(t, `printf 'kxqp\0371111\0370\0370\0370\0371\037a@b.c\0372026-01-02T03:04:05Z\037main dev\037first line\036'
printf 'kxqp\0372222\0371\0371\0371\0370\037a@b.c\037\037\037\036'`)
	entries, err := NewRealExecutor(bin, "").Log(context.Background(), "all()")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, Head{ChangeID: "kxqp", CommitID: "1111"}, entries[0].Head)
	require.True(t, entries[0].IsWorkingCopy)
	require.Equal(t, []string{"main", "dev"}, entries[0].Bookmarks)
	require.Equal(t, "first line", entries[0].Description)
	require.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), entries[0].Timestamp)

	require.True(t, entries[1].Divergent)
	require.True(t, entries[1].Empty)
	require.True(t, entries[1].Immutable)
	require.Nil(t, entries[1].Bookmarks)
	require.True(t, entries[1].Timestamp.IsZero())
}

func TestRealExecutor_BinaryNotFound(t *testing.T) {
	e := NewRealExecutor(filepath.Join(t.TempDir(), "no-such-jj"), "")
	_, err := e.Root(context.Background())
	require.ErrorIs(t, err, ErrBinaryNotFound)

	_, err = NewRealExecutor("jjview-test-no-such-binary", "").Root(context.Background())
	require.ErrorIs(t, err, ErrBinaryNotFound)
}

func TestRealExecutor_ParsesStderr(t *testing.T) {
	bin := fakeJJ(t, `echo 'Error: Revision `+"`zzz`"+` doesn'"'"'t exist' >&2; exit 1`)
	_, err := NewRealExecutor(bin, "").Show(context.Background(), Head{CommitID: "zzz"}, FormatGit, 80)
	require.ErrorIs(t, err, ErrRevisionNotFound)
}

func TestRealExecutor_ContextCanceled(t *testing.T) {
	bin := fakeJJ(t, `exec sleep 5`)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewRealExecutor(bin, "").Root(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseJJError(t *testing.T) {
	orig := errors.New("exit status 1")
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"not a repo", `Error: There is no jj repo in "."`, ErrNotJJRepo},
		{"missing revision", "Error: Revision `abc` doesn't exist", ErrRevisionNotFound},
		{"missing commit prefix", "Error: Commit ID prefix `abc` doesn't exist", ErrRevisionNotFound},
		{"config", "Config error: invalid TOML", ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, parseJJError(tt.stderr, orig), tt.want)
		})
	}

	err := parseJJError("Error: something else", orig)
	require.ErrorIs(t, err, orig)
	require.Contains(t, err.Error(), "something else")
}

func TestParseLog_Malformed(t *testing.T) {
	_, err := parseLog("only\x1ftwo\x1e")
	require.ErrorIs(t, err, ErrMalformedLog)

	_, err = parseLog("\x1f\x1f0\x1f0\x1f0\x1f0\x1f\x1f\x1f\x1f\x1e")
	require.ErrorIs(t, err, ErrMalformedLog)

	entries, err := parseLog("")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRealExecutor_Integration(t *testing.T) {
	if _, err := exec.LookPath("jj"); err != nil {
		t.Skip("jj not installed")
	}
	dir := t.TempDir()
	//nolint:gosec // fixed arguments
	if out, err := exec.Command("jj", "git", "init", dir).CombinedOutput(); err != nil {
		t.Skipf("jj git init failed: %s", out)
	}

	e := NewRealExecutor("", dir)
	entries, err := e.Log(context.Background(), "@")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].IsWorkingCopy)

	_, err = e.Show(context.Background(), entries[0].Head, FormatGit, 80)
	require.NoError(t, err)

	_, err = NewRealExecutor("", t.TempDir()).Root(context.Background())
	require.ErrorIs(t, err, ErrNotJJRepo)
}
