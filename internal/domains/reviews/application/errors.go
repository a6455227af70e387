package application

import (
	"errors"
	"fmt"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid review input")
	// ErrNotEligible signals the customer failed the purchase gates.
	ErrNotEligible = errors.New("review not permitted")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrAlreadyReviewed):
		return fmt.Errorf("%w: %w", ErrNotEligible, err)
	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyCustomer),
		errors.Is(err, domain.ErrEmptyProduct),
		errors.Is(err, domain.ErrEmptySeller),
		errors.Is(err, domain.ErrEmptyOrderItem),
		errors.Is(err, domain.ErrEmptyResponse),
		errors.Is(err, domain.ErrWrongSeller):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
