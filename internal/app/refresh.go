package app

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/jjview/internal/detailcache"
	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/tracing"
	"github.com/zjrosen/jjview/internal/ui/details"
)

// Cache lookup outcomes recorded on detail spans.
const (
	resultHit   = "hit"
	resultStale = "stale"
	resultMiss  = "miss"
	resultError = "error"
)

// refreshDetails shows the output for the selected change in the current
// format and width. Output is reused from the cache when an exact entry
// exists and computed with `jj show` otherwise. When computing fails the
// panel keeps what it showed, falling back to the change's stale entry.
func (m Model) refreshDetails() Model {
	if m.details.Columns() == 0 {
		return m
	}

	entry, ok := m.log.Selected()
	if !ok {
		m.hasShown = false
		m.shownFailed = false
		m.details = m.details.SetContent(nil).SetTitles("Details", m.format.String())
		return m
	}

	key := detailcache.NewKey(entry.Head, m.format, m.details.Columns())
	if m.hasShown && !m.shownFailed && key == m.shownKey {
		return m
	}

	ctx, span := m.tracer.Start(m.ctx, tracing.SpanDetailLookup)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrChangeID, string(entry.Head.ChangeID)),
		attribute.String(tracing.AttrCommitID, string(entry.Head.CommitID)),
		attribute.String(tracing.AttrDiffFormat, m.format.String()),
		attribute.Int(tracing.AttrWidth, key.Width),
	)

	result := resultHit
	if !m.detailCache.HasExact(key) {
		result = resultMiss
		span.AddEvent(tracing.EventCacheMiss)
	}

	value, err := m.detailCache.GetOrInsert(key, func() (*detailcache.Value, error) {
		return m.show(ctx, key)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatJJ, "jj show failed", err, "key", key.String())

		m.popup = m.popup.ShowError("jj show failed", err)
		if stale, ok := m.detailCache.Get(key); ok && !m.showingChange(key) {
			result = resultStale
			value = stale
		} else {
			result = resultError
		}
	}
	span.SetAttributes(attribute.String(tracing.AttrCacheResult, result))

	switch {
	case value != nil:
		span.SetAttributes(attribute.Int(tracing.AttrLineCount, value.Text().LineCount()))
		m = m.display(key, details.IndexedContent{Text: value.Text()})
	case m.details.Content() == nil || !m.showingChange(key):
		m = m.display(key, details.TextContent(fmt.Sprintf("Could not show %s.", entry.Head)))
	}
	// A failed lookup is retried on the next refresh.
	m.shownFailed = err != nil
	if err == nil {
		span.SetStatus(codes.Ok, "")
	}
	return m
}

// showingChange reports whether the panel already shows output of key's
// change, in which case a failed recompute keeps it on screen.
func (m Model) showingChange(key detailcache.Key) bool {
	return m.hasShown && m.shownKey.Change() == key.Change()
}

// display puts content in the details panel under key. Scrolling restarts
// at the top when the selected commit changed.
func (m Model) display(key detailcache.Key, content details.Content) Model {
	headChanged := !m.hasShown || m.shownKey.Head != key.Head
	m.shownKey = key
	m.hasShown = true

	m.details = m.details.
		SetContent(content).
		SetTitles("Details: "+key.Head.String(), m.format.String())
	if headChanged {
		m.details = m.details.ScrollTo(0)
	}
	return m
}

// show runs `jj show` for key and indexes the output.
func (m Model) show(ctx context.Context, key detailcache.Key) (*detailcache.Value, error) {
	ctx, cancel := context.WithTimeout(ctx, showTimeout)
	defer cancel()

	out, err := m.exec.Show(ctx, key.Head, key.Format, key.Width)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("jj show %s timed out after %s", key.Head.Revision(), showTimeout)
		}
		return nil, err
	}
	return detailcache.NewValue(key, out), nil
}
