package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

func (s *Service) CreateProduct(ctx context.Context, input catalogports.CreateProductInput) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct",
		trace.WithAttributes(attribute.String("product.name", input.Name), attribute.Int64("product.quantity", input.Quantity)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", input.Name))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	span.SetAttributes(attribute.String("product.id", result.ID.String()))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "product created", slog.String("product.id", result.ID.String()), slog.String("product.price", result.Price.String()))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id.String()))
	}
	return result, nil
}

func (s *Service) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdatePrice",
		trace.WithAttributes(attribute.String("product.id", id.String()), attribute.String("product.price", price.String())))
	defer span.End()

	s.logInfo(ctx, "updating product price", slog.String("product.id", id.String()), slog.String("product.price", price.String()))
	result, err := s.inner.UpdatePrice(ctx, id, price)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product price", slog.String("product.id", id.String()))
	}
	s.metrics.recordRepriced(ctx)
	return result, nil
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
	productsCreated  metric.Int64Counter
	productsRepriced metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products created"))
	repriced, _ := m.Int64Counter("catalog.service.products_repriced", metric.WithDescription("Number of product price changes"))
	return serviceMetrics{productsCreated: created, productsRepriced: repriced}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRepriced(ctx context.Context) {
	if m.productsRepriced != nil {
		m.productsRepriced.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
