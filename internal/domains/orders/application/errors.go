package application

import (
	"errors"
	"fmt"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidTransition signals a status change the order state machine rejects.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrIdempotencyConflict signals an idempotency key reuse with a different payload.
	ErrIdempotencyConflict = errors.New("order idempotency conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNegativeUnitPrice),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidItemStatus),
		errors.Is(err, domain.ErrEmptyCustomer),
		errors.Is(err, domain.ErrEmptySeller),
		errors.Is(err, domain.ErrEmptyProduct),
		errors.Is(err, domain.ErrEmptyItemName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
