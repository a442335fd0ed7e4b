package gamefolder

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/dragon-editor/dragondata/internal/gamefolder"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type loadMetrics struct {
	loaded metric.Int64Counter
	failed metric.Int64Counter
}

// newLoadMetrics uses the global OTel meter (no-op if not configured)
func newLoadMetrics() (*loadMetrics, error) {
	m := meter()

	var (
		lm  loadMetrics
		err error
	)

	lm.loaded, err = m.Int64Counter(
		"dragondata.files.loaded",
		metric.WithDescription("Total game files decoded"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loaded counter: %w", err)
	}

	lm.failed, err = m.Int64Counter(
		"dragondata.files.failed",
		metric.WithDescription("Total game files that failed to decode"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	return &lm, nil
}

func (lm *loadMetrics) record(ctx context.Context, kind Kind, ok bool) {
	attrs := metric.WithAttributes(attribute.String("kind", kind.String()))
	if ok {
		lm.loaded.Add(ctx, 1, attrs)
		return
	}
	lm.failed.Add(ctx, 1, attrs)
}
