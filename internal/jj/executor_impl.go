package jj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zjrosen/jjview/internal/log"
)

// jj-specific errors.
var (
	// ErrNotJJRepo indicates the directory is not inside a jj workspace.
	ErrNotJJRepo = errors.New("not a jj repository")

	// ErrRevisionNotFound indicates the requested revision does not exist,
	// typically because it was abandoned or rewritten since the log was read.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrBinaryNotFound indicates the jj executable could not be found.
	ErrBinaryNotFound = errors.New("jj binary not found")

	// ErrConfig indicates jj rejected its own configuration.
	ErrConfig = errors.New("jj config error")

	// ErrUnknownDiffFormat indicates an unrecognized diff format name.
	ErrUnknownDiffFormat = errors.New("unknown diff format")

	// ErrMalformedLog indicates `jj log` printed something the template
	// parser could not read.
	ErrMalformedLog = errors.New("malformed jj log output")

	// ErrInvalidOutput indicates jj printed output that is not valid UTF-8.
	ErrInvalidOutput = errors.New("jj output is not valid utf-8")
)

// Compile-time check that RealExecutor implements Executor.
var _ Executor = (*RealExecutor)(nil)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logTemplate renders one record per commit, fields separated by US and
// records terminated by RS, so descriptions and bookmarks can hold anything.
var logTemplate = strings.Join([]string{
	`change_id`,
	`commit_id`,
	`if(divergent, "1", "0")`,
	`if(empty, "1", "0")`,
	`if(immutable, "1", "0")`,
	`if(current_working_copy, "1", "0")`,
	`author.email()`,
	`author.timestamp().utc().format("%Y-%m-%dT%H:%M:%SZ")`,
	`bookmarks.join(" ")`,
	`description.first_line()`,
}, ` ++ "\x1f" ++ `) + ` ++ "\x1e"`

const logFieldCount = 10

// RealExecutor implements Executor by running the jj binary.
type RealExecutor struct {
	bin     string
	workDir string
}

// NewRealExecutor creates a new RealExecutor. An empty bin means "jj" on PATH.
func NewRealExecutor(bin, workDir string) *RealExecutor {
	if bin == "" {
		bin = "jj"
	}
	return &RealExecutor{bin: bin, workDir: workDir}
}

// runJJOutput executes a jj command and returns stdout untouched.
func (e *RealExecutor) runJJOutput(ctx context.Context, env []string, args ...string) (string, error) {
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.CommandContext(ctx, e.bin, args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	// Diff tools may leave children holding the pipes after a cancel.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug(log.CatJJ, "jj command", "args", strings.Join(args, " "), "duration", time.Since(start))

	if err != nil {
		var pathErr *os.PathError
		if errors.Is(err, exec.ErrNotFound) || (errors.As(err, &pathErr) && pathErr.Path == e.bin) {
			return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, e.bin)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("jj %s: %w", args[0], ctxErr)
		}
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", parseJJError(stderrStr, err)
		}
		return "", fmt.Errorf("jj %s: %w", strings.Join(args, " "), err)
	}

	return stdout.String(), nil
}

// parseJJError converts jj stderr messages to specific error types.
func parseJJError(stderr string, originalErr error) error {
	stderrLower := strings.ToLower(stderr)

	// Error: There is no jj repo in "."
	if strings.Contains(stderrLower, "no jj repo in") {
		return fmt.Errorf("%w: %s", ErrNotJJRepo, stderr)
	}

	// Error: Revision `abc` doesn't exist
	// Error: Commit ID prefix `abc` doesn't exist
	if strings.Contains(stderrLower, "doesn't exist") {
		return fmt.Errorf("%w: %s", ErrRevisionNotFound, stderr)
	}

	// Config error: ...
	if strings.HasPrefix(stderrLower, "config error") {
		return fmt.Errorf("%w: %s", ErrConfig, stderr)
	}

	return fmt.Errorf("jj error: %s: %w", stderr, originalErr)
}

// Root returns the workspace root directory.
func (e *RealExecutor) Root(ctx context.Context) (string, error) {
	out, err := e.runJJOutput(ctx, nil, "root", "--ignore-working-copy")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ConfigList returns `jj config list`, which jj prints as TOML.
func (e *RealExecutor) ConfigList(ctx context.Context) (string, error) {
	return e.runJJOutput(ctx, nil, "config", "list", "--no-pager", "--color", "never", "--ignore-working-copy")
}

// Log returns the commits matched by revset.
func (e *RealExecutor) Log(ctx context.Context, revset string) ([]LogEntry, error) {
	args := []string{"log", "--no-graph", "--no-pager", "--color", "never", "-T", logTemplate}
	if revset != "" {
		args = append(args, "-r", revset)
	}
	out, err := e.runJJOutput(ctx, nil, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out)
}

// Show returns the colored `jj show` output for head. The working copy is
// not snapshotted; the log that produced head already did that.
func (e *RealExecutor) Show(ctx context.Context, head Head, format DiffFormat, width int) (string, error) {
	args := []string{"show", "-r", head.Revision(), "--no-pager", "--color", "always", "--ignore-working-copy"}
	args = append(args, format.Args()...)

	var env []string
	if format.IsTool() && width > 0 {
		env = []string{"COLUMNS=" + strconv.Itoa(width)}
	}
	out, err := e.runJJOutput(ctx, env, args...)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(out) {
		log.Warn(log.CatJJ, "Invalid utf-8 in jj show output", "revision", head.Revision(), "bytes", len(out))
		return "", fmt.Errorf("%w: jj show %s", ErrInvalidOutput, head.Revision())
	}
	return out, nil
}

// parseLog parses the output of logTemplate.
func parseLog(output string) ([]LogEntry, error) {
	var entries []LogEntry
	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) != logFieldCount {
			return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLog, logFieldCount, len(fields))
		}

		entry := LogEntry{
			Head:          Head{ChangeID: ChangeID(fields[0]), CommitID: CommitID(fields[1])},
			Divergent:     fields[2] == "1",
			Empty:         fields[3] == "1",
			Immutable:     fields[4] == "1",
			IsWorkingCopy: fields[5] == "1",
			Author:        fields[6],
			Description:   fields[9],
		}
		if entry.Head.ChangeID == "" || entry.Head.CommitID == "" {
			return nil, fmt.Errorf("%w: missing id in %q", ErrMalformedLog, record)
		}
		if ts, err := time.Parse(time.RFC3339, fields[7]); err == nil {
			entry.Timestamp = ts
		}
		if fields[8] != "" {
			entry.Bookmarks = strings.Fields(fields[8])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
