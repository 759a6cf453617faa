package catalog

import "time"

// Product is a sellable item in the storefront.
type Product struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"salePrice,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Images      []string  `json:"images,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	BrandID     string    `json:"brandId,omitempty"`
	SupplierID  string    `json:"supplierId,omitempty"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

type Category struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	ParentID string `json:"parentId,omitempty"`
	Image    string `json:"image,omitempty"`
}

type Brand struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type Supplier struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Offer is a time-boxed discount on one or more products.
type Offer struct {
	ID              string    `json:"id,omitempty"`
	Title           string    `json:"title"`
	DiscountPercent float64   `json:"discountPercent"`
	ProductIDs      []string  `json:"productIds,omitempty"`
	StartsAt        time.Time `json:"startsAt,omitzero"`
	EndsAt          time.Time `json:"endsAt,omitzero"`
	Active          bool      `json:"active"`
}

type Currency struct {
	ID           string  `json:"id,omitempty"`
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol,omitempty"`
	ExchangeRate float64 `json:"exchangeRate"`
	Default      bool    `json:"default"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
}

type Order struct {
	ID         string      `json:"id,omitempty"`
	CustomerID string      `json:"customerId,omitempty"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total,omitempty"`
	Currency   string      `json:"currency,omitempty"`
	Status     string      `json:"status,omitempty"`
	CreatedAt  time.Time   `json:"createdAt,omitzero"`
}

type Customer struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// StockMovement records a change in a product's stock level.
type StockMovement struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// CheckoutRequest is the body of a checkout. The backend identifies the customer from
// the bearer token.
type CheckoutRequest struct {
	Items           []OrderItem `json:"items"`
	Currency        string      `json:"currency,omitempty"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
}
