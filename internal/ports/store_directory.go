package ports

import (
	"context"
	"delivery-zone-service/internal/domain"
)

// Contract for the external store directory a session loads its pins from.
type StoreDirectory interface {
	// Return the full store list. Failures should match domain.ErrFetchFailure.
	ListStores(ctx context.Context) ([]domain.Store, error)
}
