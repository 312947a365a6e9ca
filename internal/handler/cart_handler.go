package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/docemila/internal/cart"
	"github.com/yourusername/docemila/internal/catalog"
	"github.com/yourusername/docemila/internal/metrics"
	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

// CartIDHeader carries the opaque cart id between the browser session and
// the server. The current id is echoed on every cart response; a fresh one
// is issued when the header is absent or stale.
const CartIDHeader = "X-Cart-ID"

// CartHandler serves the shopping cart routes. Line items snapshot the
// product at first add; the handlers only orchestrate, all consolidation
// rules live in the cart engine.
type CartHandler struct {
	carts   *cart.Store
	catalog *catalog.Catalog
	metrics *metrics.Metrics
}

// NewCartHandler creates a cart handler over the given stores.
func NewCartHandler(carts *cart.Store, cat *catalog.Catalog, m *metrics.Metrics) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat, metrics: m}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	id, userCart := h.resolve(c)
	c.JSON(http.StatusOK, cartView(id, userCart))
}

// AddItem handles POST /api/cart/items. Adding an already-present product
// consolidates into the existing line; the quantity field (default 1)
// supports the product-detail page's quantity selector.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, errors.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id, userCart := h.resolve(c)
	userCart.AddN(product, req.Quantity)
	h.metrics.RecordCartAdd()

	c.JSON(http.StatusOK, cartView(id, userCart))
}

// UpdateItem handles PUT /api/cart/items/:id. The quantity is an absolute
// set; zero or below removes the line. Unknown line ids are a quiet no-op,
// mirroring the engine's total-function semantics.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, userCart := h.resolve(c)
	userCart.UpdateQuantity(productID, req.Quantity)
	h.metrics.RecordCartUpdate()

	c.JSON(http.StatusOK, cartView(id, userCart))
}

// RemoveItem handles DELETE /api/cart/items/:id. Removing an absent line is
// a no-op, not an error.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	id, userCart := h.resolve(c)
	userCart.Remove(productID)
	h.metrics.RecordCartRemove()

	c.JSON(http.StatusOK, cartView(id, userCart))
}

// ClearCart handles DELETE /api/cart: the explicit empty-the-cart action.
func (h *CartHandler) ClearCart(c *gin.Context) {
	id, userCart := h.resolve(c)
	userCart.Clear()
	c.JSON(http.StatusOK, cartView(id, userCart))
}

// resolve finds the caller's cart from the X-Cart-ID header, creating one
// when absent or unknown, and always echoes the effective id back.
func (h *CartHandler) resolve(c *gin.Context) (string, *cart.Cart) {
	id, userCart := h.carts.GetOrCreate(c.GetHeader(CartIDHeader))
	c.Header(CartIDHeader, id)
	return id, userCart
}

// cartView renders the cart payload. The total is rounded to two decimals
// here, at the serialization boundary; the engine keeps it exact.
func cartView(id string, userCart *cart.Cart) model.CartView {
	items := userCart.Items()
	return model.CartView{
		CartID: id,
		Items:  items,
		Count:  len(items),
		Total:  math.Round(cart.ComputeTotal(items)*100) / 100,
	}
}
