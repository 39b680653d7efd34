package report

import (
	"context"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"golang.org/x/sync/errgroup"
)

// snapshot is the set of records one report computes over.
type snapshot struct {
	orders     []entity.Order
	products   []entity.Product
	categories []entity.Category
	customers  []entity.Customer
}

type need struct {
	orders     bool
	window     entity.TimeRange
	products   bool
	categories bool
	customers  bool
}

// load reads the requested collections concurrently. Any failed read fails the whole load.
func (s *Service) load(ctx context.Context, n need) (*snapshot, error) {
	snap := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	if n.orders {
		g.Go(func() (err error) {
			snap.orders, err = s.orders(gctx, n.window)
			return err
		})
	}
	if n.products {
		g.Go(func() (err error) {
			snap.products, err = s.products(gctx)
			return err
		})
	}
	if n.categories {
		g.Go(func() (err error) {
			snap.categories, err = s.categories(gctx)
			return err
		})
	}
	if n.customers {
		g.Go(func() (err error) {
			snap.customers, err = s.customers(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func productID(p entity.Product) string   { return p.ID }
func categoryID(c entity.Category) string { return c.ID }
func customerID(c entity.Customer) string { return c.ID }

func productTable(products []entity.Product) analytics.Table {
	return analytics.TableOf(products, productID, analytics.ProductReference)
}

func categoryTable(categories []entity.Category) analytics.Table {
	return analytics.TableOf(categories, categoryID, func(c entity.Category) analytics.Reference {
		return analytics.Reference{Attrs: map[string]string{"categoryName": c.Name}}
	})
}

func customerTable(customers []entity.Customer) analytics.Table {
	return analytics.TableOf(customers, customerID, func(c entity.Customer) analytics.Reference {
		return analytics.Reference{Attrs: map[string]string{
			"customerName":  c.Name,
			"customerEmail": c.Email,
		}}
	})
}
