package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/docemila/configs"
	"github.com/yourusername/docemila/internal/auth"
	"github.com/yourusername/docemila/internal/cart"
	"github.com/yourusername/docemila/internal/catalog"
	"github.com/yourusername/docemila/internal/contact"
	"github.com/yourusername/docemila/internal/logging"
	"github.com/yourusername/docemila/internal/metrics"
	"github.com/yourusername/docemila/internal/model"
)

const testProducts = `
products:
  - id: 1
    name: Bolo de Pote Chocolate
    price: 15.0
    category: Bolos
    description: Bolo de chocolate com brigadeiro
    rating: 4.5
    review_count: 32
  - id: 2
    name: Brigadeiro Gourmet
    price: 5.0
    category: Doces
    rating: 5
    review_count: 47
  - id: 3
    name: Torta de Limão
    price: 28.0
    category: Tortas
    rating: 4.8
    review_count: 19
`

func newTestRouter(t *testing.T, contactEndpoint string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	file := filepath.Join(dir, "products.yaml")
	require.NoError(t, os.WriteFile(file, []byte(testProducts), 0o644))

	cfg := configs.DefaultConfig()
	cfg.Catalog.ProductsFile = file
	cfg.Auth.SimulatedLatency = 0
	cfg.Contact.Endpoint = contactEndpoint

	logger := logging.NewNop()
	cat, err := catalog.New(cfg.Catalog, logger)
	require.NoError(t, err)

	return NewRouter(Deps{
		Catalog: cat,
		Carts:   cart.NewStore(),
		Auth:    auth.NewService(cfg.Auth, auth.NewMemoryStore(), logger),
		Relay:   contact.NewRelay(cfg.Contact, logger),
		Metrics: metrics.New(),
		Logger:  logger,
	})
}

func doJSON(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list model.ProductList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 1, list.Products[0].ID)
}

func TestListProductsFiltered(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodGet, "/api/products?q=bri&sort=price-desc", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list model.ProductList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.Products[0].ID) // 15.00 before 5.00
	assert.Equal(t, 2, list.Products[1].ID)
}

func TestListProductsNoMatchesIsNotAnError(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodGet, "/api/products?category=Salgados", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list model.ProductList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Zero(t, list.Total)
	assert.Empty(t, list.Products)
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodGet, "/api/products/2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Brigadeiro Gourmet", p.Name)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/api/products/99", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/api/products/abc", nil, nil).Code)
}

func TestGetMeta(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodGet, "/api/products/meta", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var meta model.CatalogMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "all", meta.Categories[0].Category)
	assert.Equal(t, 3, meta.Categories[0].Count)
	assert.Equal(t, 50.0, meta.PriceRange.Max)
}

func TestCartFlow(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	// First touch issues a cart id.
	rec := doJSON(router, http.MethodPost, "/api/cart/items", model.AddItemRequest{ProductID: 1}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cartID := rec.Header().Get(CartIDHeader)
	require.NotEmpty(t, cartID)

	withCart := map[string]string{CartIDHeader: cartID}

	// Second add of the same product consolidates.
	rec = doJSON(router, http.MethodPost, "/api/cart/items", model.AddItemRequest{ProductID: 1}, withCart)
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, 1, view.Count)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 30.0, view.Total)

	// Absolute quantity set.
	rec = doJSON(router, http.MethodPut, "/api/cart/items/1", model.UpdateItemRequest{Quantity: 5}, withCart)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 75.0, view.Total)

	// Quantity zero removes the line.
	rec = doJSON(router, http.MethodPut, "/api/cart/items/1", model.UpdateItemRequest{Quantity: 0}, withCart)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Zero(t, view.Count)

	// Removing an absent line is a no-op, still 200.
	rec = doJSON(router, http.MethodDelete, "/api/cart/items/42", nil, withCart)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Unknown products cannot be added.
	rec = doJSON(router, http.MethodPost, "/api/cart/items", model.AddItemRequest{ProductID: 99}, withCart)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartClear(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodPost, "/api/cart/items", model.AddItemRequest{ProductID: 2, Quantity: 3}, nil)
	cartID := rec.Header().Get(CartIDHeader)

	rec = doJSON(router, http.MethodDelete, "/api/cart", nil, map[string]string{CartIDHeader: cartID})
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, cartID, view.CartID)
	assert.Zero(t, view.Count)
	assert.Zero(t, view.Total)
}

func TestCartUnknownIDGetsFreshCart(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodGet, "/api/cart", nil, map[string]string{CartIDHeader: "stale-id"})
	require.Equal(t, http.StatusOK, rec.Code)

	issued := rec.Header().Get(CartIDHeader)
	assert.NotEmpty(t, issued)
	assert.NotEqual(t, "stale-id", issued)
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	rec := doJSON(router, http.MethodPost, "/api/auth/login",
		model.LoginRequest{Email: "maria@example.com", Password: "segredo1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// The issued token opens the protected route.
	rec = doJSON(router, http.MethodGet, "/api/auth/me", nil,
		map[string]string{"Authorization": "Bearer " + resp.Token})
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "maria@example.com", user.Email)

	// Logout invalidates it.
	rec = doJSON(router, http.MethodPost, "/api/auth/logout", nil,
		map[string]string{"Authorization": "Bearer " + resp.Token})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/auth/me", nil,
		map[string]string{"Authorization": "Bearer " + resp.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMeRequiresToken(t *testing.T) {
	router := newTestRouter(t, "http://unused")
	assert.Equal(t, http.StatusUnauthorized, doJSON(router, http.MethodGet, "/api/auth/me", nil, nil).Code)
}

func TestRegisterValidationSurfacesField(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	req := model.RegisterRequest{
		Name:            "Maria Silva",
		Email:           "maria@example.com",
		Phone:           "11999999999", // unmasked: rejected by the service
		Password:        "segredo1",
		ConfirmPassword: "segredo1",
		AcceptTerms:     true,
	}
	rec := doJSON(router, http.MethodPost, "/api/auth/register", req, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "phone", body["field"])
}

func testContactRequest() model.ContactRequest {
	return model.ContactRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Phone:   "(11) 99999-9999",
		Subject: "Encomenda",
		Message: "Gostaria de encomendar um bolo.",
	}
}

func TestContactRelay(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)

	rec := doJSON(router, http.MethodPost, "/api/contact", testContactRequest(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["whatsapp_url"], "wa.me")
}

func TestContactRejectsIncompleteForm(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	req := testContactRequest()
	req.Subject = ""
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/contact", req, nil).Code)

	req = testContactRequest()
	req.Message = "curta"
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/contact", req, nil).Code)
}

func TestContactRelayFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)

	rec := doJSON(router, http.MethodPost, "/api/contact", testContactRequest(), nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, "http://unused")

	doJSON(router, http.MethodGet, "/api/products", nil, nil)
	rec := doJSON(router, http.MethodGet, "/metrics", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docemila_filter_runs_total 1")
	assert.Contains(t, rec.Body.String(), "docemila_requests_2xx_total")
}
