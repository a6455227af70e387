// Package catalog pushes review aggregates to the product catalog.
package catalog

import (
	"context"
	"errors"

	catalogports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
)

var _ ports.RatingUpdater = (*RatingUpdater)(nil)

// RatingUpdater forwards recomputed product ratings to the catalog service.
type RatingUpdater struct {
	catalog catalogports.Service
}

// NewRatingUpdater wires the catalog service as the rating sink.
func NewRatingUpdater(catalog catalogports.Service) *RatingUpdater {
	return &RatingUpdater{catalog: catalog}
}

// ApplyRating overwrites the product's denormalized rating aggregate. An
// unknown product is ignored so review moderation never fails on a listing
// that was deleted afterwards.
func (u *RatingUpdater) ApplyRating(ctx context.Context, productID string, average float64, count int) error {
	err := u.catalog.ApplyRating(ctx, productID, average, count)
	if errors.Is(err, catalogports.ErrNotFound) {
		return nil
	}
	return err
}
