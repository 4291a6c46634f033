package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/tracing"
)

// logTimeout bounds one `jj log` run.
const logTimeout = 30 * time.Second

// showTimeout bounds one `jj show` run. Diff tools can be slow on large
// changes but must not hang the UI forever.
const showTimeout = 15 * time.Second

// logLoadedMsg carries the result of a log load.
type logLoadedMsg struct {
	revset  string
	entries []jj.LogEntry
	err     error
}

// loadLog returns a command that reads the log through the read-through
// cache. fresh skips the cache for this revset.
func (m Model) loadLog(fresh bool) tea.Cmd {
	revset := m.revset
	logCache := m.logCache
	tracer := m.tracer

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()

		ctx, span := tracer.Start(ctx, tracing.SpanLogLoad)
		defer span.End()
		span.SetAttributes(
			attribute.String(tracing.AttrRevset, revset),
			attribute.Bool("log.fresh", fresh),
		)

		var (
			entries []jj.LogEntry
			err     error
		)
		if fresh {
			entries, err = logCache.Refresh(ctx, revset)
		} else {
			entries, err = logCache.Get(ctx, revset)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.ErrorErr(log.CatApp, "Loading log failed", err, "revset", revset)
		} else {
			span.SetAttributes(attribute.Int(tracing.AttrLogEntries, len(entries)))
			span.SetStatus(codes.Ok, "")
		}
		return logLoadedMsg{revset: revset, entries: entries, err: err}
	}
}
