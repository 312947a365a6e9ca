// Package model defines the data types shared between the storefront layers.
// These types cross the boundary between the HTTP handlers and the domain
// packages, so they carry both JSON and Gin binding tags.
package model

// Product represents one confectionery item in the reference catalog.
// The catalog is loaded once at startup and never mutated afterwards.
type Product struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	Rating      float64  `json:"rating" yaml:"rating"`
	ReviewCount int      `json:"review_count" yaml:"review_count"`
	IsNew       bool     `json:"is_new" yaml:"is_new"`
	Image       string   `json:"image" yaml:"image"`
	Gallery     []string `json:"gallery,omitempty" yaml:"gallery,omitempty"`
}

// CartItem is a product snapshot plus the quantity held in the cart.
// The snapshot is taken on first add and is not refreshed by later adds.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity for this line, unrounded.
func (it CartItem) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// Sort keys accepted by the catalog filter pipeline.
// CategoryAll disables the category filter; SortRelevance keeps file order.
const (
	CategoryAll = "all"

	SortRelevance  = "relevance"
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortNameAsc    = "name-asc"
	SortRatingDesc = "rating-desc"
)

// FilterCriteria is the combined search/category/price/rating/sort state
// driving the product listing. It is rebuilt from query parameters on every
// request and never persisted.
type FilterCriteria struct {
	SearchTerm string  `form:"q"`
	Category   string  `form:"category,default=all"`
	MinPrice   float64 `form:"min_price"`
	MaxPrice   float64 `form:"max_price"`
	MinRating  float64 `form:"min_rating"`
	SortKey    string  `form:"sort,default=relevance"`
}

// CategoryCount pairs a category value with the number of products in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceRange is the inclusive price span offered to the range control.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CatalogMeta is the auxiliary listing data: per-category counts (with a
// total under "all") and the price range bounds for the filter controls.
type CatalogMeta struct {
	Categories []CategoryCount `json:"categories"`
	PriceRange PriceRange      `json:"price_range"`
}

// ProductList is the filtered, ordered listing payload.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// User is the account shape fabricated by the simulated auth flow.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Remember bool   `json:"remember"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	AcceptTerms     bool   `json:"accept_terms" binding:"required"`
}

// AuthResponse is returned by login and register: the fabricated user plus
// an opaque bearer token. The token is never cryptographically verified.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AddItemRequest adds a product to the cart, quantity defaulting to 1.
type AddItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

// UpdateItemRequest sets a line item quantity. Zero or negative removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart payload rendered to the client. The total is rounded
// to two decimals at this serialization boundary only.
type CartView struct {
	CartID string     `json:"cart_id"`
	Items  []CartItem `json:"items"`
	Count  int        `json:"count"`
	Total  float64    `json:"total"`
}

// ContactRequest mirrors the storefront contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required,min=10"`
}
