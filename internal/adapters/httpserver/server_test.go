package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeupglamours/shop/internal/adapters/httpserver"
	"github.com/makeupglamours/shop/internal/adapters/kv"
	"github.com/makeupglamours/shop/internal/adapters/repo/memory"
	"github.com/makeupglamours/shop/internal/adapters/storage/localfs"
	"github.com/makeupglamours/shop/internal/domain"
	"github.com/makeupglamours/shop/internal/usecase"
)

type testEnv struct {
	srv      *httptest.Server
	client   *http.Client
	products *memory.ProductRepo
	config   *memory.ConfigRepo
}

func newTestEnv(t *testing.T, cfg domain.SiteConfig) *testEnv {
	t.Helper()

	products := memory.NewProductRepo()
	slides := memory.NewSlideRepo()
	config := memory.NewConfigRepo(cfg)
	store := localfs.New(t.TempDir())

	handler := httpserver.New(httpserver.Options{
		Products:      &usecase.ProductUC{Products: products},
		Slides:        &usecase.SlideUC{Slides: slides},
		SiteConfig:    &usecase.ConfigUC{Config: config, Storage: store},
		Carts:         &usecase.CartUC{Products: products, Config: config, Store: kv.NewMemory()},
		Storage:       store,
		Auth:          usecase.StaticAuthenticator{Username: "editor", Password: "clave-larga"},
		SessionSecret: "test-secret",
		UploadsDir:    t.TempDir(),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		srv:      srv,
		client:   &http.Client{Jar: jar},
		products: products,
		config:   config,
	}
}

func (e *testEnv) seed(t *testing.T, p *domain.Product) *domain.Product {
	t.Helper()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Active = true
	require.NoError(t, e.products.Save(context.Background(), p))
	return p
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := e.client.Post(e.srv.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (e *testEnv) getJSON(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}
	return out
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp, body := e.postJSON(t, "/admin/login", map[string]string{"username": "editor", "password": "clave-larga"})
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())
	p := env.seed(t, &domain.Product{Name: "Iluminador Líquido", Price: 21.00, Stock: 3})

	resp, body := env.postJSON(t, "/api/cart", map[string]any{"product_id": p.ID.String(), "qty": 5})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(3), body["added"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["count"])

	// el tope ya se alcanzó: agregar más no es error
	resp, body = env.postJSON(t, "/api/cart", map[string]any{"product_id": p.ID.String(), "qty": 1})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(0), body["added"])
	assert.Equal(t, "sold_out", body["status"])
	assert.Equal(t, float64(3), body["count"])

	lineID := domain.LineID(p.ID, nil)
	resp, body = env.postJSON(t, "/api/cart/update", map[string]any{"line_id": lineID, "qty": 2})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])
	assert.InDelta(t, 42.00, body["total"].(float64), 0.001)

	resp, body = env.postJSON(t, "/api/cart/remove", map[string]any{"line_id": lineID})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	resp, body = env.getJSON(t, "/api/cart")
	require.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, body["lines"])
}

func TestCartRequiresVariantSelection(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())
	pid := uuid.New()
	p := env.seed(t, &domain.Product{
		ID:    pid,
		Name:  "Base Fluida",
		Price: 30,
		Variants: []domain.Variant{
			{ID: uuid.New(), ProductID: pid, Name: "Beige", Stock: 5},
		},
	})

	resp, body := env.postJSON(t, "/api/cart", map[string]any{"product_id": p.ID.String(), "qty": 1})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	vid := p.Variants[0].ID
	resp, body = env.postJSON(t, "/api/cart", map[string]any{
		"product_id": p.ID.String(),
		"variant_id": vid.String(),
		"qty":        2,
	})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), body["added"])
}

func TestCheckoutReturnsWhatsAppLink(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())
	p := env.seed(t, &domain.Product{Name: "Bruma Fijadora", Price: 28.00, Stock: 12})

	resp, _ := env.postJSON(t, "/api/cart", map[string]any{"product_id": p.ID.String(), "qty": 2})
	require.Equal(t, 200, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/api/cart/checkout", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err = env.client.Do(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.Equal(t, 200, resp.StatusCode)
	link, _ := body["url"].(string)
	assert.Contains(t, link, "https://wa.me/50375771383?text=")
	assert.Contains(t, link, "2x+Bruma+Fijadora")
	assert.Contains(t, link, "Total+a+Pagar%3A+%2456.00")

	// el navegador recibe el redirect directo
	env.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err = env.client.Get(env.srv.URL + "/api/cart/checkout")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "https://wa.me/")
	env.client.CheckRedirect = nil

	// el carrito sigue intacto después del checkout
	resp, body = env.getJSON(t, "/api/cart")
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/api/cart/checkout", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err := env.client.Do(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestAdminEndpointsRequireSession(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())

	resp, _ := env.postJSON(t, "/api/products", map[string]any{"name": "Intruso", "price": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.postJSON(t, "/admin/login", map[string]string{"username": "editor", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, body := env.getJSON(t, "/api/admin/session")
	assert.Equal(t, false, body["admin"])

	env.login(t)

	_, body = env.getJSON(t, "/api/admin/session")
	assert.Equal(t, true, body["admin"])
	assert.Equal(t, "editor", body["user"])

	resp, _ = env.postJSON(t, "/admin/logout", map[string]any{})
	require.Equal(t, 200, resp.StatusCode)
	_, body = env.getJSON(t, "/api/admin/session")
	assert.Equal(t, false, body["admin"])
}

func TestAdminProductCRUD(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())
	env.login(t)

	resp, body := env.postJSON(t, "/api/products", map[string]any{
		"name":     "Paleta Nude",
		"price":    45.00,
		"category": "Ojos",
		"stock":    6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	resp, body = env.postJSON(t, fmt.Sprintf("/api/products/%s/variants", id), map[string]any{
		"name":  "Edición Rosa",
		"stock": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	vid := body["id"].(string)

	_, body = env.getJSON(t, "/api/products/"+id)
	assert.Equal(t, float64(3), body["total_stock"])

	req, err := http.NewRequest(http.MethodPut, env.srv.URL+"/api/products/"+id,
		bytes.NewReader([]byte(`{"price": 39.99}`)))
	require.NoError(t, err)
	resp, err = env.client.Do(req)
	require.NoError(t, err)
	body = decodeBody(t, resp)
	require.Equal(t, 200, resp.StatusCode)
	assert.InDelta(t, 39.99, body["price"].(float64), 0.001)
	assert.Equal(t, "Paleta Nude", body["name"])

	req, err = http.NewRequest(http.MethodDelete, env.srv.URL+"/api/products/"+id+"/variants/"+vid, nil)
	require.NoError(t, err)
	resp, err = env.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, env.srv.URL+"/api/products/"+id, nil)
	require.NoError(t, err)
	resp, err = env.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	resp, _ = env.getJSON(t, "/api/products/"+id)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSoldOutVisibility(t *testing.T) {
	cfg := memory.DefaultSiteConfig()
	cfg.ShowSoldOut = false
	env := newTestEnv(t, cfg)

	env.seed(t, &domain.Product{Name: "Disponible", Price: 10, Stock: 5})
	env.seed(t, &domain.Product{Name: "Agotado", Price: 10, Stock: 0})

	_, body := env.getJSON(t, "/api/products")
	items := body["products"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Disponible", items[0].(map[string]any)["name"])

	// el panel siempre ve el catálogo completo
	env.login(t)
	_, body = env.getJSON(t, "/api/products")
	assert.Len(t, body["products"].([]any), 2)
}

func TestSlidesAndConfigEndpoints(t *testing.T) {
	env := newTestEnv(t, memory.DefaultSiteConfig())

	resp, _ := env.postJSON(t, "/api/slides", map[string]any{"image_url": "/uploads/hero.jpg"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env.login(t)

	resp, body := env.postJSON(t, "/api/slides", map[string]any{
		"title":     "Nueva Colección",
		"image_url": "/uploads/hero.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Nueva Colección", body["title"])
	assert.Equal(t, "Comprar Ahora", body["button_text"])

	req, err := http.NewRequest(http.MethodPut, env.srv.URL+"/api/config",
		bytes.NewReader([]byte(`{"site_name": "Glamours Beauty", "slider_speed": 6000}`)))
	require.NoError(t, err)
	resp, err = env.client.Do(req)
	require.NoError(t, err)
	body = decodeBody(t, resp)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Glamours Beauty", body["site_name"])

	_, body = env.getJSON(t, "/api/config")
	assert.Equal(t, "Glamours Beauty", body["site_name"])
	assert.Equal(t, float64(6000), body["slider_speed"])
	assert.Equal(t, "50375771383", body["phone_number"])
}
