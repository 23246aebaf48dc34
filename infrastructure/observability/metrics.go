package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"beatledger/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	log "github.com/sirupsen/logrus"
)

// MetricsProvider manages OpenTelemetry metrics for the revenue engine
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	eventsNormalizedCounter      metric.Int64Counter
	eventsSkippedCounter         metric.Int64Counter
	distributionRunsCounter      metric.Int64Counter
	distributionProducersCounter metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Info("metrics provider already initialized")
		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("beatledger"),
			semconv.DeploymentEnvironment(mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	if mp.config.OTelEnabled {
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
	} else {
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(60*time.Second))),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("beatledger")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("metrics provider initialized")
	return nil
}

// createInstruments registers all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.eventsNormalizedCounter, err = mp.meter.Int64Counter(
		"revenue_events_normalized_total",
		metric.WithDescription("Number of raw transactions normalized into revenue events"),
	)
	if err != nil {
		return err
	}

	mp.eventsSkippedCounter, err = mp.meter.Int64Counter(
		"revenue_events_skipped_total",
		metric.WithDescription("Number of malformed raw transactions skipped during normalization"),
	)
	if err != nil {
		return err
	}

	mp.distributionRunsCounter, err = mp.meter.Int64Counter(
		"membership_distribution_runs_total",
		metric.WithDescription("Number of executed membership distribution runs"),
	)
	if err != nil {
		return err
	}

	mp.distributionProducersCounter, err = mp.meter.Int64Counter(
		"membership_distribution_producers_total",
		metric.WithDescription("Number of producers paid across distribution runs"),
	)
	if err != nil {
		return err
	}

	return nil
}

// EventsNormalized records normalized event counts
func (mp *MetricsProvider) EventsNormalized(ctx context.Context, count int) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	if !mp.initialized || count == 0 {
		return
	}
	mp.eventsNormalizedCounter.Add(ctx, int64(count))
}

// EventsSkipped records malformed event counts
func (mp *MetricsProvider) EventsSkipped(ctx context.Context, count int) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	if !mp.initialized || count == 0 {
		return
	}
	mp.eventsSkippedCounter.Add(ctx, int64(count))
}

// DistributionExecuted records one executed distribution run
func (mp *MetricsProvider) DistributionExecuted(ctx context.Context, producers int) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	if !mp.initialized {
		return
	}
	mp.distributionRunsCounter.Add(ctx, 1)
	mp.distributionProducersCounter.Add(ctx, int64(producers))
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider == nil {
		return nil
	}
	return mp.meterProvider.Shutdown(ctx)
}
