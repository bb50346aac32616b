package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("customer.id", input.CustomerID.String()),
			attribute.Int("order.requested_lines", len(input.Products)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer.id", input.CustomerID.String()), slog.Int("order.requested_lines", len(input.Products)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		s.metrics.recordFailure(ctx, failureReason(err))
		return nil, s.handleError(ctx, span, err, "failed to create order",
			slog.String("customer.id", input.CustomerID.String()), slog.String("reason", failureReason(err)))
	}
	span.SetAttributes(attribute.String("order.id", result.ID.String()), attribute.String("order.total", result.Total().String()))
	s.metrics.recordCreated(ctx, len(result.Lines))
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID.String()),
		slog.Int("order.lines", len(result.Lines)),
		slog.String("order.total", result.Total().String()))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "loading order", slog.String("order.id", id.String()))
	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return result, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ordersdomain.ErrInvalidCustomer):
		return "invalid_customer"
	case errors.Is(err, ordersdomain.ErrInvalidProduct):
		return "invalid_product"
	case errors.Is(err, ordersdomain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ordersapp.ErrStockUpdate):
		return "stock_update"
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated metric.Int64Counter
	orderLines    metric.Int64Counter
	orderFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.orders_created", metric.WithDescription("Number of orders created"))
	lines, _ := m.Int64Counter("orders.service.order_lines", metric.WithDescription("Number of order lines created"))
	failures, _ := m.Int64Counter("orders.service.order_failures", metric.WithDescription("Number of rejected or failed orders"))
	return serviceMetrics{ordersCreated: created, orderLines: lines, orderFailures: failures}
}

func (m serviceMetrics) recordCreated(ctx context.Context, lines int) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
	if m.orderLines != nil {
		m.orderLines.Add(ctx, int64(lines))
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, reason string) {
	if m.orderFailures != nil {
		m.orderFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ ordersports.Service = (*Service)(nil)
