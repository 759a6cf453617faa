package catalog

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-storefront/apiclient"
)

// Backend collection paths.
const (
	PathProducts       = "/products"
	PathCategories     = "/categories"
	PathBrands         = "/brands"
	PathSuppliers      = "/suppliers"
	PathOffers         = "/offers"
	PathCurrency       = "/currency"
	PathOrders         = "/orders"
	PathCustomers      = "/customers"
	PathStockMovements = "/stock-movements"
	PathMyOrders       = "/orders/me"
	PathCheckout       = "/orders/checkout"
)

// ProductQueryParams are the storefront filters passed through to the backend.
var ProductQueryParams = []string{"q", "category", "brand", "minPrice", "maxPrice", "sort", "page", "limit"}

// FilterQuery keeps only the allowed keys of q.
func FilterQuery(q url.Values, allowed []string) url.Values {
	out := url.Values{}
	for _, k := range allowed {
		if v, ok := q[k]; ok && len(v) > 0 && v[0] != "" {
			out[k] = v
		}
	}
	return out
}

// Services groups one typed resource per backend collection.
type Services struct {
	client   *apiclient.Client
	myOrders *apiclient.Resource[Order]

	Products       *apiclient.Resource[Product]
	Categories     *apiclient.Resource[Category]
	Brands         *apiclient.Resource[Brand]
	Suppliers      *apiclient.Resource[Supplier]
	Offers         *apiclient.Resource[Offer]
	Currency       *apiclient.Resource[Currency]
	Orders         *apiclient.Resource[Order]
	Customers      *apiclient.Resource[Customer]
	StockMovements *apiclient.Resource[StockMovement]
}

// NewServices builds the resources over an authenticated client.
func NewServices(client *apiclient.Client) *Services {
	return &Services{
		client:         client,
		myOrders:       apiclient.NewResource[Order](client, PathMyOrders),
		Products:       apiclient.NewResource[Product](client, PathProducts),
		Categories:     apiclient.NewResource[Category](client, PathCategories),
		Brands:         apiclient.NewResource[Brand](client, PathBrands),
		Suppliers:      apiclient.NewResource[Supplier](client, PathSuppliers),
		Offers:         apiclient.NewResource[Offer](client, PathOffers),
		Currency:       apiclient.NewResource[Currency](client, PathCurrency),
		Orders:         apiclient.NewResource[Order](client, PathOrders),
		Customers:      apiclient.NewResource[Customer](client, PathCustomers),
		StockMovements: apiclient.NewResource[StockMovement](client, PathStockMovements),
	}
}

// SearchProducts lists products using only the supported storefront filters.
func (s *Services) SearchProducts(ctx context.Context, q url.Values) ([]Product, error) {
	return s.Products.List(ctx, FilterQuery(q, ProductQueryParams))
}

// MyOrders lists the orders of the signed-in customer. Like any collection, the backend
// may answer with a bare array or a {"data": [...]} envelope.
func (s *Services) MyOrders(ctx context.Context) ([]Order, error) {
	return s.myOrders.List(ctx, nil)
}

// Checkout places an order for the signed-in customer.
func (s *Services) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	var order Order
	if err := s.client.Do(ctx, http.MethodPost, PathCheckout, nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
