package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/adapters/memory"
	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

func checkoutInput() ordertypes.CreateOrderInput {
	return ordertypes.CreateOrderInput{
		CustomerID: "cust-1",
		Items: []ordertypes.ItemInput{
			{ProductID: "prod-1", SellerID: "seller-1", Name: "Fresh Tilapia", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "prod-2", SellerID: "seller-2", Name: "Dried Dagaa", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
		Pricing: ordertypes.PricingInput{
			Subtotal:    decimal.NewFromInt(25),
			ShippingFee: decimal.NewFromInt(3),
			Tax:         decimal.NewFromInt(2),
			Discount:    decimal.Zero,
			Total:       decimal.NewFromInt(30),
		},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo := ordermemory.NewRepository()
	svc := NewService(repo)

	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, order.OrderNumber)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, domain.PaymentPending, order.PaymentStatus)

	view, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	for _, item := range view.Items {
		require.Equal(t, domain.ItemPending, item.Status)
		require.True(t, item.TotalPrice.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}

	history, err := svc.GetOrderHistory(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, domain.StatusPending, history[0].Status)
}

func TestCreateOrder_NoItems(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	_, err := svc.CreateOrder(context.Background(), ordertypes.CreateOrderInput{CustomerID: "cust-1"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	input := checkoutInput()
	input.Pricing.Total = decimal.NewFromInt(31)
	_, err := svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrTotalMismatch)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	repo := ordermemory.NewRepository()
	svc := NewService(repo, WithIdempotencyStore(ordermemory.NewIdempotencyStore()))

	input := checkoutInput()
	input.IdempotencyKey = "checkout-abc"

	first, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	orders, err := svc.ListOrders(context.Background(), ordertypes.OrderFilters{CustomerID: "cust-1"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestCreateOrder_IdempotencyKeyReusedWithDifferentPayload(t *testing.T) {
	svc := NewService(ordermemory.NewRepository(), WithIdempotencyStore(ordermemory.NewIdempotencyStore()))

	input := checkoutInput()
	input.IdempotencyKey = "checkout-abc"
	_, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	changed := checkoutInput()
	changed.IdempotencyKey = "checkout-abc"
	changed.Items[0].Quantity = 3
	changed.Pricing.Subtotal = decimal.NewFromInt(35)
	changed.Pricing.Total = decimal.NewFromInt(40)
	_, err = svc.CreateOrder(context.Background(), changed)
	require.ErrorIs(t, err, ErrIdempotencyConflict)
}

func TestUpdateOrder_StatusAppendsSingleHistoryRow(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	status := domain.StatusConfirmed
	actor := "admin-1"
	updated, err := svc.UpdateOrder(context.Background(), order.ID, ordertypes.OrderPatch{Status: &status, StatusNotes: "payment verified"}, &actor)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, updated.Status)

	history, err := svc.GetOrderHistory(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, domain.StatusConfirmed, history[1].Status)
	require.Equal(t, "payment verified", history[1].Notes)
	require.NotNil(t, history[1].ActorID)
	require.Equal(t, actor, *history[1].ActorID)
}

func TestUpdateOrder_RejectsBackwardTransition(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	delivered := domain.StatusDelivered
	_, err = svc.UpdateOrder(context.Background(), order.ID, ordertypes.OrderPatch{Status: &delivered}, nil)
	require.NoError(t, err)

	pending := domain.StatusPending
	_, err = svc.UpdateOrder(context.Background(), order.ID, ordertypes.OrderPatch{Status: &pending}, nil)
	require.ErrorIs(t, err, ErrInvalidTransition)

	history, err := svc.GetOrderHistory(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestUpdateOrder_NonStatusPatchSkipsHistory(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	paid := domain.PaymentPaid
	updated, err := svc.UpdateOrder(context.Background(), order.ID, ordertypes.OrderPatch{PaymentStatus: &paid}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	require.Equal(t, domain.StatusPending, updated.Status)

	history, err := svc.GetOrderHistory(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestCancelOrder_RecordsReason(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(context.Background(), order.ID, "customer request", nil)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)

	history, err := svc.GetOrderHistory(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, "customer request", history[len(history)-1].Notes)
	require.Nil(t, history[len(history)-1].ActorID)

	_, err = svc.CancelOrder(context.Background(), order.ID, "again", nil)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetSellerOrders_ScopesItemsToSeller(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	views, err := svc.GetSellerOrders(context.Background(), "seller-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, order.ID, views[0].Order.ID)
	require.Len(t, views[0].Items, 1)
	require.Equal(t, "seller-1", views[0].Items[0].SellerID)
}

func TestGetSellerOrderStats_BucketsByOrderStatus(t *testing.T) {
	repo := ordermemory.NewRepository()
	svc := NewService(repo)
	ctx := context.Background()

	pendingOrder, err := svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)
	_ = pendingOrder

	deliveredOrder, err := svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)
	delivered := domain.StatusDelivered
	_, err = svc.UpdateOrder(ctx, deliveredOrder.ID, ordertypes.OrderPatch{Status: &delivered}, nil)
	require.NoError(t, err)

	shippedOrder, err := svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)
	shipped := domain.StatusShipped
	_, err = svc.UpdateOrder(ctx, shippedOrder.ID, ordertypes.OrderPatch{Status: &shipped}, nil)
	require.NoError(t, err)

	stats, err := svc.GetSellerOrderStats(ctx, "seller-1")
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 0, stats.Processing)
	require.Equal(t, 1, stats.Completed)
	// Only delivered orders accumulate revenue: one seller-1 item at 2 x 10.
	require.True(t, stats.Revenue.Equal(decimal.NewFromInt(20)), "revenue %s", stats.Revenue)
}

func TestUpdateOrderItemStatus_ForwardOnly(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	order, err := svc.CreateOrder(context.Background(), checkoutInput())
	require.NoError(t, err)

	view, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	itemID := view.Items[0].ID

	item, err := svc.UpdateOrderItemStatus(context.Background(), itemID, domain.ItemPacked)
	require.NoError(t, err)
	require.Equal(t, domain.ItemPacked, item.Status)

	_, err = svc.UpdateOrderItemStatus(context.Background(), itemID, domain.ItemPending)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateOrderItemStatus(context.Background(), itemID, domain.ItemStatus("lost"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerifyDeliveredPurchase(t *testing.T) {
	svc := NewService(ordermemory.NewRepository())
	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = svc.VerifyDeliveredPurchase(ctx, "cust-1", "prod-1")
	require.ErrorIs(t, err, ports.ErrItemNotFound)

	delivered := domain.StatusDelivered
	_, err = svc.UpdateOrder(ctx, order.ID, ordertypes.OrderPatch{Status: &delivered}, nil)
	require.NoError(t, err)

	item, err := svc.VerifyDeliveredPurchase(ctx, "cust-1", "prod-1")
	require.NoError(t, err)
	require.Equal(t, "prod-1", item.ProductID)

	_, err = svc.VerifyDeliveredPurchase(ctx, "cust-2", "prod-1")
	require.ErrorIs(t, err, ports.ErrItemNotFound)
}

type capturingPublisher struct {
	mu     sync.Mutex
	placed []ordertypes.OrderEvent
	status []ordertypes.OrderEvent
}

func (p *capturingPublisher) OrderPlaced(_ context.Context, event ordertypes.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placed = append(p.placed, event)
	return nil
}

func (p *capturingPublisher) OrderStatusChanged(_ context.Context, event ordertypes.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = append(p.status, event)
	return nil
}

func TestOrderEventsPublished(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := NewService(ordermemory.NewRepository(), WithPublisher(publisher))
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)
	require.Len(t, publisher.placed, 1)
	require.Equal(t, order.ID, publisher.placed[0].OrderID)

	confirmed := domain.StatusConfirmed
	_, err = svc.UpdateOrder(ctx, order.ID, ordertypes.OrderPatch{Status: &confirmed}, nil)
	require.NoError(t, err)
	require.Len(t, publisher.status, 1)
	require.Equal(t, domain.StatusConfirmed, publisher.status[0].Status)
}
