package jj

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/jjview/internal/tracing"
)

// TracingExecutor wraps an Executor with one span per jj invocation.
type TracingExecutor struct {
	next   Executor
	tracer trace.Tracer
}

var _ Executor = (*TracingExecutor)(nil)

// NewTracingExecutor wraps next. A nil tracer returns next unchanged.
func NewTracingExecutor(next Executor, tracer trace.Tracer) Executor {
	if tracer == nil {
		return next
	}
	return &TracingExecutor{next: next, tracer: tracer}
}

func (e *TracingExecutor) Root(ctx context.Context) (string, error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanJJRoot, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	root, err := e.next.Root(ctx)
	endSpan(span, err)
	return root, err
}

func (e *TracingExecutor) ConfigList(ctx context.Context) (string, error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanJJConfigList, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	out, err := e.next.ConfigList(ctx)
	span.SetAttributes(attribute.Int(tracing.AttrOutputSize, len(out)))
	endSpan(span, err)
	return out, err
}

func (e *TracingExecutor) Log(ctx context.Context, revset string) ([]LogEntry, error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanJJLog,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String(tracing.AttrRevset, revset)),
	)
	defer span.End()

	entries, err := e.next.Log(ctx, revset)
	span.SetAttributes(attribute.Int(tracing.AttrLogEntries, len(entries)))
	endSpan(span, err)
	return entries, err
}

func (e *TracingExecutor) Show(ctx context.Context, head Head, format DiffFormat, width int) (string, error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanJJShow,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrChangeID, string(head.ChangeID)),
			attribute.String(tracing.AttrCommitID, string(head.CommitID)),
			attribute.String(tracing.AttrDiffFormat, format.String()),
			attribute.Int(tracing.AttrWidth, width),
		),
	)
	defer span.End()

	out, err := e.next.Show(ctx, head, format, width)
	span.SetAttributes(attribute.Int(tracing.AttrOutputSize, len(out)))
	endSpan(span, err)
	return out, err
}

func endSpan(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(tracing.AttrErrorType, errorType(err)))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrNotJJRepo):
		return "not_jj_repo"
	case errors.Is(err, ErrRevisionNotFound):
		return "revision_not_found"
	case errors.Is(err, ErrBinaryNotFound):
		return "binary_not_found"
	case errors.Is(err, ErrConfig):
		return "config"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
