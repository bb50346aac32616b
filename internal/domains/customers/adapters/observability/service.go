package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	customerdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
)

const tracerName = "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/observability/service"

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

func (s *Service) CreateCustomer(ctx context.Context, name, email string) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	s.logInfo(ctx, "creating customer")
	result, err := s.inner.CreateCustomer(ctx, name, email)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create customer")
	}
	span.SetAttributes(attribute.String("customer.id", result.ID.String()))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "customer created", slog.String("customer.id", result.ID.String()))
	return result, nil
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomer", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()

	result, err := s.inner.GetCustomer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", id.String()))
	}
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
	customersCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("customers.service.customers_created", metric.WithDescription("Number of customers created"))
	return serviceMetrics{customersCreated: created}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.customersCreated != nil {
		m.customersCreated.Add(ctx, 1)
	}
}

var _ customerports.Service = (*Service)(nil)
