package jj_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/mocks"
	"github.com/zjrosen/jjview/internal/tracing"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder, tp
}

func TestTracingExecutor_NilTracerReturnsInner(t *testing.T) {
	inner := mocks.NewMockExecutor(t)
	require.Same(t, inner, jj.NewTracingExecutor(inner, nil))
}

func TestTracingExecutor_ShowSpan(t *testing.T) {
	recorder, tp := newRecorder(t)
	inner := mocks.NewMockExecutor(t)
	head := jj.Head{ChangeID: "kxqp", CommitID: "abcd"}
	inner.EXPECT().Show(mock.Anything, head, jj.FormatGit, 100).Return("diff output", nil)

	exec := jj.NewTracingExecutor(inner, tp.Tracer("test"))
	out, err := exec.Show(context.Background(), head, jj.FormatGit, 100)
	require.NoError(t, err)
	require.Equal(t, "diff output", out)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanJJShow, spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	require.Equal(t, "abcd", attrs[tracing.AttrCommitID])
	require.Equal(t, "git", attrs[tracing.AttrDiffFormat])
	require.Equal(t, int64(len("diff output")), attrs[tracing.AttrOutputSize])
}

func TestTracingExecutor_RecordsErrors(t *testing.T) {
	recorder, tp := newRecorder(t)
	inner := mocks.NewMockExecutor(t)
	inner.EXPECT().Log(mock.Anything, "all()").Return(nil, jj.ErrNotJJRepo)

	exec := jj.NewTracingExecutor(inner, tp.Tracer("test"))
	_, err := exec.Log(context.Background(), "all()")
	require.ErrorIs(t, err, jj.ErrNotJJRepo)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1, "error recorded as an event")
}

func TestTracingExecutor_PassesThroughRootAndConfig(t *testing.T) {
	_, tp := newRecorder(t)
	inner := mocks.NewMockExecutor(t)
	inner.EXPECT().Root(mock.Anything).Return("/repo", nil)
	inner.EXPECT().ConfigList(mock.Anything).Return(`ui.diff.format = "git"`, nil)

	exec := jj.NewTracingExecutor(inner, tp.Tracer("test"))
	root, err := exec.Root(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/repo", root)

	cfg, err := jj.LoadConfig(context.Background(), exec)
	require.NoError(t, err)
	require.Equal(t, jj.FormatGit, cfg.DiffFormat())
}
