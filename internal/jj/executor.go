// Package jj runs the jj binary and parses what it prints.
package jj

import (
	"context"
	"time"
)

// ChangeID is the stable identity of a change. It survives rebases and
// amendments, and several visible commits share one when a change diverged.
type ChangeID string

// CommitID is the content-addressed identity of one snapshot of a change.
type CommitID string

// Short returns the first 8 characters, the way jj abbreviates ids.
func (c ChangeID) Short() string { return shortID(string(c)) }

// Short returns the first 8 characters, the way jj abbreviates ids.
func (c CommitID) Short() string { return shortID(string(c)) }

func shortID(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}

// Head is one visible commit together with the change it belongs to.
// The zero Head means the working-copy commit ("@").
type Head struct {
	ChangeID ChangeID
	CommitID CommitID
}

// Revision returns the revset naming exactly this commit.
func (h Head) Revision() string {
	if h.CommitID == "" {
		return "@"
	}
	return string(h.CommitID)
}

func (h Head) String() string {
	if h.CommitID == "" {
		return "@"
	}
	return h.ChangeID.Short() + "/" + h.CommitID.Short()
}

// LogEntry is one row of `jj log`.
type LogEntry struct {
	Head          Head
	Divergent     bool
	Empty         bool
	Immutable     bool
	IsWorkingCopy bool
	Author        string
	Timestamp     time.Time
	Bookmarks     []string
	Description   string // first line only
}

// Executor defines the jj operations jjview needs.
// This abstraction allows for easy testing with mock implementations.
type Executor interface {
	// Root returns the workspace root directory.
	// Returns ErrNotJJRepo outside of a jj workspace.
	Root(ctx context.Context) (string, error)

	// ConfigList returns the effective jj configuration as TOML.
	ConfigList(ctx context.Context) (string, error)

	// Log returns the commits matched by revset, in jj's display order.
	// An empty revset uses jj's default.
	Log(ctx context.Context, revset string) ([]LogEntry, error)

	// Show returns `jj show` output for head, colored for the terminal.
	// width is only passed on for DiffTool formats, as COLUMNS.
	Show(ctx context.Context, head Head, format DiffFormat, width int) (string, error)
}
