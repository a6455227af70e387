package ports

import (
	"context"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
)

// EventPublisher fans order lifecycle events out to downstream consumers.
// Implementations must be safe to call with a nil receiver check upstream;
// the service treats a nil publisher as a no-op.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, event ordertypes.OrderEvent) error
	OrderStatusChanged(ctx context.Context, event ordertypes.OrderEvent) error
}
