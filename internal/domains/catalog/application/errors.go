package application

import (
	"errors"
	"fmt"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid catalog input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptySeller),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrNegativeReviews):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
