// Package temporal dials the Temporal cluster used for durable checkout.
package temporal

import (
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/Apurer/autoparts-pos/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal is switched off.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Config selects the cluster.
type Config struct {
	Address   string
	Namespace string
	Disabled  bool
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = client.DefaultHostPort
	}
	if c.Namespace == "" {
		c.Namespace = client.DefaultNamespace
	}
	return c
}

// Dial connects a client with OpenTelemetry tracing and slog-backed logging.
func Dial(cfg Config, instruments *observability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Disabled {
		return nil, ErrDisabled
	}
	cfg = cfg.withDefaults()
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
