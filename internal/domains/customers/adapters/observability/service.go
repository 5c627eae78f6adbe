package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	customerdomain "github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
)

const tracerName = "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/observability/service"

// Service decorates the customer service with tracing, logging, and metrics.
type Service struct {
	inner   customerports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core customer service.
func New(inner customerports.Service, opts ...Option) customerports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Register(ctx context.Context, input customerports.RegisterInput) (*customerports.CustomerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register customer")
	}
	span.SetAttributes(attribute.Int64("customer.id", result.Entity.ID))
	s.metrics.add(ctx, s.metrics.registered)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "customer registered", slog.Int64("customer.id", result.Entity.ID))
	return result, nil
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*customerports.CustomerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomer", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	result, err := s.inner.GetCustomer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.Int64("customer.id", id))
	}
	return result, nil
}

func (s *Service) GetCustomerByName(ctx context.Context, fullName string) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomerByName")
	defer span.End()

	result, err := s.inner.GetCustomerByName(ctx, fullName)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to look up customer")
	}
	span.SetAttributes(attribute.Int64("customer.id", result.ID))
	return result, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*customerports.CustomerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.ListCustomers")
	defer span.End()

	result, err := s.inner.ListCustomers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customers.count", len(result)))
	return result, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.DeleteCustomer", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	if err := s.inner.DeleteCustomer(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete customer", slog.Int64("customer.id", id))
	}
	s.metrics.add(ctx, s.metrics.deleted)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "customer deleted", slog.Int64("customer.id", id))
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	registered metric.Int64Counter
	deleted    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("customers.service.registered", metric.WithDescription("Number of customers registered"))
	deleted, _ := m.Int64Counter("customers.service.deleted", metric.WithDescription("Number of customers deleted"))
	return serviceMetrics{registered: registered, deleted: deleted}
}

func (m serviceMetrics) add(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}

var _ customerports.Service = (*Service)(nil)
