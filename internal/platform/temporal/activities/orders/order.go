package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	orderports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

// PersistOrderActivityName persists the order aggregate with its line items.
const PersistOrderActivityName = "orders.activities.PersistOrder"

// Activities groups activities operating on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder places the order through the application service. Checkout
// idempotency inside the service makes retries of this activity safe.
func (a *Activities) PersistOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customerId", input.CustomerID, "items", len(input.Items))
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customerId", input.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return order, nil
}
