// Package telemetry provides OpenTelemetry instrumentation and logging for awsls.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/yairfalse/awsls/internal/config"
)

const scope = "awsls"

// Provider owns the tracer and meter used around AWS API calls. Metrics
// always land in a private Prometheus registry; OTLP export is added
// when an endpoint is configured.
type Provider struct {
	traces   *sdktrace.TracerProvider
	metrics  *sdkmetric.MeterProvider
	registry *promclient.Registry
	tracer   trace.Tracer
	meter    metric.Meter
	inst     instruments
}

type instruments struct {
	calls    metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
	listed   metric.Int64Counter
}

// NewProvider builds a Provider from the [otel] config section.
func NewProvider(ctx context.Context, cfg config.OTELConfig) (*Provider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}

	registry := promclient.NewRegistry()
	mp, err := newMeterProvider(ctx, cfg, res, registry)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	p := &Provider{
		traces:   tp,
		metrics:  mp,
		registry: registry,
		tracer:   tp.Tracer(scope),
		meter:    mp.Meter(scope),
	}
	if p.inst, err = newInstruments(p.meter); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	return p, nil
}

func newTracerProvider(ctx context.Context, cfg config.OTELConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	if !cfg.Traces.Enabled || cfg.Endpoint == "" {
		return sdktrace.NewTracerProvider(sdktrace.WithResource(res)), nil
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithDialOption(dialOptions(cfg)...),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.Traces.SampleRate)),
	), nil
}

func newMeterProvider(ctx context.Context, cfg config.OTELConfig, res *resource.Resource, reg *promclient.Registry) (*sdkmetric.MeterProvider, error) {
	textfile, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	readers := []sdkmetric.Option{sdkmetric.WithResource(res), sdkmetric.WithReader(textfile)}

	if cfg.Metrics.Enabled && cfg.Endpoint != "" {
		exp, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithDialOption(dialOptions(cfg)...),
		)
		if err != nil {
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
	}
	return sdkmetric.NewMeterProvider(readers...), nil
}

func dialOptions(cfg config.OTELConfig) []grpc.DialOption {
	if !cfg.Insecure {
		return nil
	}
	return []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
}

func newInstruments(m metric.Meter) (instruments, error) {
	var (
		in  instruments
		err error
	)
	if in.calls, err = m.Int64Counter("awsls_api_calls_total",
		metric.WithDescription("AWS API calls issued")); err != nil {
		return in, fmt.Errorf("api calls counter: %w", err)
	}
	if in.failures, err = m.Int64Counter("awsls_api_errors_total",
		metric.WithDescription("AWS API calls that returned an error")); err != nil {
		return in, fmt.Errorf("api errors counter: %w", err)
	}
	if in.latency, err = m.Float64Histogram("awsls_query_duration_seconds",
		metric.WithDescription("Latency of AWS API calls"), metric.WithUnit("s")); err != nil {
		return in, fmt.Errorf("query duration histogram: %w", err)
	}
	if in.listed, err = m.Int64Counter("awsls_resources_listed_total",
		metric.WithDescription("Identifiers returned by listing queries")); err != nil {
		return in, fmt.Errorf("resources listed counter: %w", err)
	}
	return in, nil
}

// Tracer returns the awsls tracer.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Meter returns the awsls meter.
func (p *Provider) Meter() metric.Meter { return p.meter }

// Registry returns the Prometheus registry backing the textfile export.
func (p *Provider) Registry() *promclient.Registry { return p.registry }

// StartSpan starts a span on the awsls tracer.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Observe runs one AWS API call inside a span and records its latency
// and outcome.
func (p *Provider) Observe(ctx context.Context, service, operation string, fn func(context.Context) error) error {
	ctx, span := p.StartSpan(ctx, service+"."+operation,
		attribute.String("aws.service", service),
		attribute.String("aws.operation", operation),
	)
	defer span.End()

	labels := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	)

	start := time.Now()
	err := fn(ctx)
	p.inst.latency.Record(ctx, time.Since(start).Seconds(), labels)
	p.inst.calls.Add(ctx, 1, labels)

	if err != nil {
		p.inst.failures.Add(ctx, 1, labels)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// RecordResourceCount adds n identifiers of the given kind to the listing counter.
func (p *Provider) RecordResourceCount(ctx context.Context, kind string, n int) {
	p.inst.listed.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}

// WriteTextfile dumps the registry in Prometheus text format for
// node_exporter's textfile collector.
func (p *Provider) WriteTextfile(path string) error {
	if err := promclient.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.traces != nil {
		if err := p.traces.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
		}
	}
	if p.metrics != nil {
		if err := p.metrics.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter: %w", err))
		}
	}
	return errors.Join(errs...)
}
