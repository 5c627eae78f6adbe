package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner     catalogports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	metrics   serviceMetrics
	threshold int
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

// WithLowStockThreshold makes restocks and lookups warn when a part is below threshold.
func WithLowStockThreshold(threshold int) Option {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
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

func (s *Service) AddPart(ctx context.Context, input catalogports.AddPartInput) (*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddPart",
		trace.WithAttributes(attribute.String("part.name", input.Name), attribute.String("part.model", input.Model)))
	defer span.End()

	result, err := s.inner.AddPart(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add part", slog.String("part.name", input.Name))
	}
	s.metrics.recordAdded(ctx)
	span.SetAttributes(attribute.Int64("part.id", result.ID))
	s.logInfo(ctx, "part added", slog.Int64("part.id", result.ID), slog.String("part.name", result.Name), slog.Int("part.stock", result.Stock))
	return result, nil
}

func (s *Service) Restock(ctx context.Context, id int64, quantity int) (*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Restock",
		trace.WithAttributes(attribute.Int64("part.id", id), attribute.Int("restock.quantity", quantity)))
	defer span.End()

	result, err := s.inner.Restock(ctx, id, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restock part", slog.Int64("part.id", id))
	}
	s.metrics.recordRestocked(ctx, quantity)
	s.logInfo(ctx, "part restocked", slog.Int64("part.id", id), slog.Int("restock.quantity", quantity), slog.Int("part.stock", result.Stock))
	s.warnLowStock(ctx, result)
	return result, nil
}

func (s *Service) UpdatePrices(ctx context.Context, id int64, price, cost decimal.Decimal) (*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdatePrices", trace.WithAttributes(attribute.Int64("part.id", id)))
	defer span.End()

	result, err := s.inner.UpdatePrices(ctx, id, price, cost)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update part prices", slog.Int64("part.id", id))
	}
	s.logInfo(ctx, "part prices updated", slog.Int64("part.id", id),
		slog.String("part.price", result.Price.StringFixed(2)), slog.String("part.cost", result.Cost.StringFixed(2)))
	return result, nil
}

func (s *Service) GetPart(ctx context.Context, id int64) (*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetPart", trace.WithAttributes(attribute.Int64("part.id", id)))
	defer span.End()

	result, err := s.inner.GetPart(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load part", slog.Int64("part.id", id))
	}
	return result, nil
}

func (s *Service) GetPartByNameAndModel(ctx context.Context, name, model string) (*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetPartByNameAndModel",
		trace.WithAttributes(attribute.String("part.name", name), attribute.String("part.model", model)))
	defer span.End()

	result, err := s.inner.GetPartByNameAndModel(ctx, name, model)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to look up part", slog.String("part.name", name), slog.String("part.model", model))
	}
	span.SetAttributes(attribute.Int64("part.id", result.ID))
	return result, nil
}

func (s *Service) GetStock(ctx context.Context, id int64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetStock", trace.WithAttributes(attribute.Int64("part.id", id)))
	defer span.End()

	stock, err := s.inner.GetStock(ctx, id)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to read stock", slog.Int64("part.id", id))
	}
	span.SetAttributes(attribute.Int("part.stock", stock))
	return stock, nil
}

func (s *Service) ListParts(ctx context.Context, filter catalogports.ListFilter) ([]*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListParts",
		trace.WithAttributes(attribute.String("filter.search", filter.Search), attribute.Int("filter.stock_below", filter.StockBelow)))
	defer span.End()

	result, err := s.inner.ListParts(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list parts")
	}
	span.SetAttributes(attribute.Int("parts.count", len(result)))
	return result, nil
}

func (s *Service) LowStock(ctx context.Context, threshold int) ([]*catalogdomain.Part, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.LowStock", trace.WithAttributes(attribute.Int("threshold", threshold)))
	defer span.End()

	result, err := s.inner.LowStock(ctx, threshold)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list low stock parts")
	}
	span.SetAttributes(attribute.Int("parts.count", len(result)))
	if len(result) > 0 {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "items requiring restock", slog.Int("parts.count", len(result)))
	}
	return result, nil
}

func (s *Service) warnLowStock(ctx context.Context, part *catalogdomain.Part) {
	if s.threshold <= 0 || part == nil || !part.IsLowStock(s.threshold) {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "part below low stock threshold",
		slog.Int64("part.id", part.ID), slog.Int("part.stock", part.Stock), slog.Int("threshold", s.threshold))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	partsAdded     metric.Int64Counter
	unitsRestocked metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	partsAdded, _ := m.Int64Counter("catalog.service.parts_added", metric.WithDescription("Number of parts added to the catalog"))
	unitsRestocked, _ := m.Int64Counter("catalog.service.units_restocked", metric.WithDescription("Units added to stock by restocks"))
	return serviceMetrics{partsAdded: partsAdded, unitsRestocked: unitsRestocked}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.partsAdded != nil {
		m.partsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRestocked(ctx context.Context, quantity int) {
	if m.unitsRestocked != nil {
		m.unitsRestocked.Add(ctx, int64(quantity))
	}
}

var _ catalogports.Service = (*Service)(nil)
