package application

import (
	"errors"
	"fmt"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid delivery input")
	// ErrInvalidTransition signals a status change the delivery state machine rejects.
	ErrInvalidTransition = errors.New("invalid delivery status transition")
	// ErrConflict signals a duplicate delivery for the order.
	ErrConflict = errors.New("delivery conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotAssignable):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrAlreadyForOrder):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrEmptyPickup),
		errors.Is(err, domain.ErrEmptyDestination),
		errors.Is(err, domain.ErrEmptyDistributor),
		errors.Is(err, domain.ErrNegativeDistanceKm):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
