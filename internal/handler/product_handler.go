// Package handler provides the HTTP request handlers for the storefront API.
// It implements the presentation layer, translating HTTP requests into calls
// on the catalog, cart, auth, and contact packages and formatting responses.
//
// Package handler 提供店铺API的HTTP请求处理程序。
// 它实现表示层，将HTTP请求转换为对目录、购物车、认证和联系包的调用并格式化响应。
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/docemila/internal/catalog"
	"github.com/yourusername/docemila/internal/metrics"
	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

// ProductHandler serves the catalog listing, detail, and metadata routes.
type ProductHandler struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
}

// NewProductHandler creates a product handler over the given catalog.
func NewProductHandler(cat *catalog.Catalog, m *metrics.Metrics) *ProductHandler {
	return &ProductHandler{catalog: cat, metrics: m}
}

// ListProducts handles GET /api/products. Filter criteria arrive as query
// parameters; out-of-range price bounds are clamped, never rejected, and an
// empty result is a normal 200 response.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var criteria model.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meta := h.catalog.Meta()
	catalog.ClampPriceRange(&criteria, meta.PriceRange.Max)

	products := h.catalog.Apply(criteria)
	h.metrics.RecordFilterRun()

	c.JSON(http.StatusOK, model.ProductList{Products: products, Total: len(products)})
}

// GetProduct handles GET /api/products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, errors.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetMeta handles GET /api/products/meta: the per-category counts and the
// price range bounds that drive the filter controls.
func (h *ProductHandler) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Meta())
}
