package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
)

// Product names a product to report on.
type Product struct {
	ID   int64
	Name string
}

// Loader fetches the stored records of one product.
type Loader func(ctx context.Context, productID int64) ([]feedback.Record, error)

// Report aggregates every product concurrently, with at most workers loads
// in flight (unbounded when workers <= 0). Results keep the product order.
func Report(ctx context.Context, products []Product, load Loader, workers int) ([]ProductAnalytics, error) {
	results := make([]ProductAnalytics, len(products))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range products {
		g.Go(func() error {
			records, err := load(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("loading feedback for product %d: %w", p.ID, err)
			}
			a := Aggregate(records)
			a.ProductID = p.ID
			a.ProductName = p.Name
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
