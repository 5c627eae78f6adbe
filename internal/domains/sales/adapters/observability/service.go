package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	salesapp "github.com/Apurer/autoparts-pos/internal/domains/sales/application"
	salesdomain "github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

const tracerName = "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/observability/service"

// Service decorates the sales service with tracing, logging, and metrics.
type Service struct {
	inner   salesports.Service
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

// New wraps the core sales service.
func New(inner salesports.Service, opts ...Option) salesports.Service {
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

func (s *Service) StartSession(ctx context.Context, customerName string) (*salesdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.StartSession", trace.WithAttributes(attribute.String("customer.name", customerName)))
	defer span.End()

	result, err := s.inner.StartSession(ctx, customerName)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to start checkout session", slog.String("customer.name", customerName))
	}
	span.SetAttributes(attribute.String("session.id", result.ID))
	s.logInfo(ctx, "checkout session started", slog.String("session.id", result.ID), slog.Int64("customer.id", result.Cart.CustomerID))
	return result, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*salesdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.GetSession", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	result, err := s.inner.GetSession(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load checkout session", slog.String("session.id", id))
	}
	return result, nil
}

func (s *Service) AddLine(ctx context.Context, sessionID string, input salesports.AddLineInput) (*salesdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.AddLine", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int64("part.id", input.PartID),
		attribute.String("part.name", input.PartName),
		attribute.Int("line.quantity", input.Quantity),
	))
	defer span.End()

	result, err := s.inner.AddLine(ctx, sessionID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart line", slog.String("session.id", sessionID))
	}
	span.SetAttributes(attribute.Int("cart.lines", len(result.Cart.Lines)))
	s.logInfo(ctx, "cart line added", slog.String("session.id", sessionID),
		slog.Int("cart.quantity", result.Cart.TotalQuantity), slog.String("cart.total", result.Cart.GrandTotal.StringFixed(2)))
	return result, nil
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (*salesdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ClearCart", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	result, err := s.inner.ClearCart(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("session.id", sessionID))
	}
	s.logInfo(ctx, "cart cleared", slog.String("session.id", sessionID))
	return result, nil
}

func (s *Service) Checkout(ctx context.Context, sessionID string) (*salesdomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.Checkout", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	receipt, err := s.inner.Checkout(ctx, sessionID)
	if receipt != nil {
		span.SetAttributes(attribute.String("receipt.number", receipt.Number))
		s.metrics.recordSale(ctx, receipt)
		s.logInfo(ctx, "sale committed", slog.String("session.id", sessionID), slog.String("receipt.number", receipt.Number),
			slog.Int("receipt.quantity", receipt.TotalQuantity), slog.String("receipt.total", receipt.GrandTotal.StringFixed(2)))
	}
	if err != nil {
		if errors.Is(err, salesdomain.ErrStockConflict) {
			s.metrics.recordConflict(ctx)
		}
		return receipt, s.handleError(ctx, span, err, "checkout failed", slog.String("session.id", sessionID))
	}
	return receipt, nil
}

func (s *Service) ProfitReport(ctx context.Context, period salesdomain.ReportPeriod) (*salesdomain.ProfitReport, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ProfitReport", trace.WithAttributes(
		attribute.String("period.from", period.From.Format("2006-01-02")),
		attribute.String("period.to", period.To.Format("2006-01-02")),
	))
	defer span.End()

	result, err := s.inner.ProfitReport(ctx, period)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build profit report")
	}
	span.SetAttributes(attribute.Int("report.rows", len(result.Rows)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError logs rejected business requests at warn and everything else,
// including a committed sale whose session was not saved, at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		level := slog.LevelError
		if isBusinessError(err) {
			level = slog.LevelWarn
		}
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

func isBusinessError(err error) bool {
	if errors.Is(err, salesapp.ErrSessionSync) || errors.Is(err, salesdomain.ErrPersistence) {
		return false
	}
	return errors.Is(err, salesdomain.ErrValidation) ||
		errors.Is(err, salesdomain.ErrInsufficientStock) ||
		errors.Is(err, salesdomain.ErrEmptyCart) ||
		errors.Is(err, salesdomain.ErrStockConflict) ||
		errors.Is(err, salesports.ErrSessionNotFound)
}

type serviceMetrics struct {
	salesCommitted metric.Int64Counter
	unitsSold      metric.Int64Counter
	revenue        metric.Float64Counter
	stockConflicts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	salesCommitted, _ := m.Int64Counter("sales.service.sales_committed", metric.WithDescription("Number of committed sales"))
	unitsSold, _ := m.Int64Counter("sales.service.units_sold", metric.WithDescription("Units sold across committed sales"))
	revenue, _ := m.Float64Counter("sales.service.revenue", metric.WithDescription("Revenue of committed sales"), metric.WithUnit("ZAR"))
	stockConflicts, _ := m.Int64Counter("sales.service.stock_conflicts", metric.WithDescription("Checkouts rejected because stock changed"))
	return serviceMetrics{salesCommitted: salesCommitted, unitsSold: unitsSold, revenue: revenue, stockConflicts: stockConflicts}
}

func (m serviceMetrics) recordSale(ctx context.Context, receipt *salesdomain.Receipt) {
	if m.salesCommitted != nil {
		m.salesCommitted.Add(ctx, 1)
	}
	if m.unitsSold != nil {
		m.unitsSold.Add(ctx, int64(receipt.TotalQuantity))
	}
	if m.revenue != nil {
		m.revenue.Add(ctx, receipt.GrandTotal.InexactFloat64())
	}
}

func (m serviceMetrics) recordConflict(ctx context.Context) {
	if m.stockConflicts != nil {
		m.stockConflicts.Add(ctx, 1)
	}
}

var _ salesports.Service = (*Service)(nil)
