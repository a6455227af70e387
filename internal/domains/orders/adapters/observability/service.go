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

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

const tracerName = "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CreateOrder places a new order with instrumentation.
func (s *Service) CreateOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder",
		attribute.String("order.customer_id", input.CustomerID),
		attribute.Int("order.item_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer.id", input.CustomerID), slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("customer.id", input.CustomerID))
	}
	if result != nil {
		s.metrics.recordCreated(ctx, result.Status)
		s.logInfo(ctx, "order created",
			slog.String("order.id", result.ID),
			slog.String("order.number", result.OrderNumber),
			slog.String("order.total", result.Total.String()),
		)
	}
	return result, nil
}

// GetOrder loads an order with its line items.
func (s *Service) GetOrder(ctx context.Context, id string) (*ordertypes.OrderWithItems, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.String("order.id", id))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	if result != nil {
		span.SetAttributes(attribute.Int("order.item_count", len(result.Items)))
	}
	return result, nil
}

// ListOrders returns orders matching the filters.
func (s *Service) ListOrders(ctx context.Context, filters ordertypes.OrderFilters) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx, filters)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// GetSellerOrders returns orders scoped to the seller's line items.
func (s *Service) GetSellerOrders(ctx context.Context, sellerID string) ([]*ordertypes.OrderWithItems, error) {
	ctx, span := s.startSpan(ctx, "Service.GetSellerOrders", attribute.String("seller.id", sellerID))
	defer span.End()

	result, err := s.inner.GetSellerOrders(ctx, sellerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list seller orders", slog.String("seller.id", sellerID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// UpdateOrder applies a partial update with transition enforcement.
func (s *Service) UpdateOrder(ctx context.Context, orderID string, patch ordertypes.OrderPatch, actorID *string) (*domain.Order, error) {
	attrs := []attribute.KeyValue{attribute.String("order.id", orderID)}
	if patch.Status != nil {
		attrs = append(attrs, attribute.String("order.status.target", string(*patch.Status)))
	}
	ctx, span := s.startSpan(ctx, "Service.UpdateOrder", attrs...)
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", orderID))
	result, err := s.inner.UpdateOrder(ctx, orderID, patch, actorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", orderID))
	}
	if result != nil {
		if patch.Status != nil {
			s.metrics.recordTransition(ctx, result.Status)
		}
		s.logInfo(ctx, "order updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	}
	return result, nil
}

// UpdateOrderItemStatus moves a line item along its lifecycle.
func (s *Service) UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateOrderItemStatus",
		attribute.String("order.item.id", itemID),
		attribute.String("order.item.status.target", string(status)),
	)
	defer span.End()

	result, err := s.inner.UpdateOrderItemStatus(ctx, itemID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order item", slog.String("item.id", itemID))
	}
	s.logInfo(ctx, "order item updated", slog.String("item.id", itemID), slog.String("status", string(status)))
	return result, nil
}

// CancelOrder cancels the order with the given reason.
func (s *Service) CancelOrder(ctx context.Context, orderID, reason string, actorID *string) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CancelOrder", attribute.String("order.id", orderID))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order.id", orderID))
	result, err := s.inner.CancelOrder(ctx, orderID, reason, actorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", orderID))
	}
	if result != nil {
		s.metrics.recordCancelled(ctx)
		s.logInfo(ctx, "order cancelled", slog.String("order.id", result.ID))
	}
	return result, nil
}

// GetSellerOrderStats aggregates seller order counters and revenue.
func (s *Service) GetSellerOrderStats(ctx context.Context, sellerID string) (*ordertypes.SellerOrderStats, error) {
	ctx, span := s.startSpan(ctx, "Service.GetSellerOrderStats", attribute.String("seller.id", sellerID))
	defer span.End()

	result, err := s.inner.GetSellerOrderStats(ctx, sellerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute seller stats", slog.String("seller.id", sellerID))
	}
	return result, nil
}

// GetOrderHistory returns the status trail for an order.
func (s *Service) GetOrderHistory(ctx context.Context, orderID string) ([]*domain.StatusHistory, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrderHistory", attribute.String("order.id", orderID))
	defer span.End()

	result, err := s.inner.GetOrderHistory(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order history", slog.String("order.id", orderID))
	}
	span.SetAttributes(attribute.Int("order.history.count", len(result)))
	return result, nil
}

// VerifyDeliveredPurchase checks whether the customer received the product.
func (s *Service) VerifyDeliveredPurchase(ctx context.Context, customerID, productID string) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "Service.VerifyDeliveredPurchase",
		attribute.String("customer.id", customerID),
		attribute.String("product.id", productID),
	)
	defer span.End()

	result, err := s.inner.VerifyDeliveredPurchase(ctx, customerID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "purchase verification miss",
			slog.String("customer.id", customerID), slog.String("product.id", productID))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
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
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersCreated     metric.Int64Counter
	ordersTransitions metric.Int64Counter
	ordersCancelled   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders placed"))
	ordersTransitions, _ := m.Int64Counter("orders.service.transitions", metric.WithDescription("Number of order status transitions"))
	ordersCancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	return serviceMetrics{
		ordersCreated:     ordersCreated,
		ordersTransitions: ordersTransitions,
		ordersCancelled:   ordersCancelled,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersCreated, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersTransitions, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	addCounter(ctx, m.ordersCancelled, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
