package otel

import (
	"context"
	"sync"

	eventbus "github.com/hanpama/querygen/internal/eventbus"
	events "github.com/hanpama/querygen/internal/events"
	runid "github.com/hanpama/querygen/internal/runid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers that turn
// generation-run events into spans. If endpoint is empty, no telemetry is
// configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("querygen")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer     trace.Tracer
	runSpans   sync.Map // run id -> trace.Span
	phaseSpans sync.Map // run id + phase -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.GenerateStart) {
		_, span := s.tracer.Start(ctx, "querygen.generate")
		span.SetAttributes(
			attribute.String("querygen.run_id", e.RunID),
			attribute.String("querygen.schema", e.Schema),
			attribute.Int("querygen.documents", len(e.Docs)),
		)
		s.runSpans.Store(e.RunID, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.GenerateFinish) {
		v, ok := s.runSpans.LoadAndDelete(e.RunID)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.PhaseStart) {
		rid, _ := runid.FromContext(ctx)
		parent := ctx
		if v, ok := s.runSpans.Load(rid); ok {
			parent = trace.ContextWithSpan(ctx, v.(trace.Span))
		}
		_, span := s.tracer.Start(parent, "querygen.phase")
		span.SetAttributes(attribute.String("querygen.phase", e.Phase))
		s.phaseSpans.Store(rid+"/"+e.Phase, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.PhaseFinish) {
		rid, _ := runid.FromContext(ctx)
		v, ok := s.phaseSpans.LoadAndDelete(rid + "/" + e.Phase)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})
}
