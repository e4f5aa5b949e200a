package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeupglamours/shop/internal/adapters/kv"
	"github.com/makeupglamours/shop/internal/adapters/repo/memory"
	"github.com/makeupglamours/shop/internal/domain"
	"github.com/makeupglamours/shop/internal/usecase"
)

func newCartUC(t *testing.T) (*usecase.CartUC, *memory.ProductRepo) {
	t.Helper()
	products := memory.NewProductRepo()
	cfg := memory.NewConfigRepo(memory.DefaultSiteConfig())
	return &usecase.CartUC{Products: products, Config: cfg, Store: kv.NewMemory()}, products
}

func seedLipstick(t *testing.T, products *memory.ProductRepo, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{ID: uuid.New(), Name: "Lipstick", Price: 24.99, Category: "Labios", Active: true, Stock: stock}
	require.NoError(t, products.Save(context.Background(), p))
	return p
}

func TestCartUCAddPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	uc, products := newCartUC(t)
	p := seedLipstick(t, products, 5)

	cart, added, err := uc.Add(ctx, "sess-1", p.ID, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, cart.Count())

	reloaded, err := uc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Count())

	other, err := uc.Get(ctx, "sess-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestCartUCAddUnknownProduct(t *testing.T) {
	uc, _ := newCartUC(t)
	_, _, err := uc.Add(context.Background(), "sess-1", uuid.New(), nil, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartUCAddUnknownVariant(t *testing.T) {
	ctx := context.Background()
	uc, products := newCartUC(t)
	p := seedLipstick(t, products, 5)
	bogus := uuid.New()
	_, _, err := uc.Add(ctx, "sess-1", p.ID, &bogus, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartUCAddClampsAndSignalsSoldOut(t *testing.T) {
	ctx := context.Background()
	uc, products := newCartUC(t)
	p := seedLipstick(t, products, 3)

	_, added, err := uc.Add(ctx, "sess-1", p.ID, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	cart, added, err := uc.Add(ctx, "sess-1", p.ID, nil, 1)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, 3, cart.Count())
}

func TestCartUCUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	uc, products := newCartUC(t)
	p := seedLipstick(t, products, 5)

	cart, _, err := uc.Add(ctx, "sess-1", p.ID, nil, 2)
	require.NoError(t, err)
	lineID := cart.Lines[0].ID

	cart, err = uc.UpdateQuantity(ctx, "sess-1", lineID, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Lines[0].Quantity)

	cart, err = uc.UpdateQuantity(ctx, "sess-1", lineID, 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// snapshot was dropped from the store, a fresh load starts clean
	reloaded, err := uc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())

	cart, _, err = uc.Add(ctx, "sess-1", p.ID, nil, 1)
	require.NoError(t, err)
	cart, err = uc.Remove(ctx, "sess-1", cart.Lines[0].ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartUCCheckoutLink(t *testing.T) {
	ctx := context.Background()
	uc, products := newCartUC(t)
	p := seedLipstick(t, products, 5)

	_, _, err := uc.Add(ctx, "sess-1", p.ID, nil, 2)
	require.NoError(t, err)

	link, err := uc.CheckoutLink(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, len(link) > 0)
	assert.Contains(t, link, "https://wa.me/50375771383?text=")
	// el mensaje va URL-encoded dentro del query param
	assert.Contains(t, link, "2x+Lipstick+-+%2449.98")
	assert.Contains(t, link, "Total+a+Pagar%3A+%2449.98")
}

func TestCartUCCheckoutEmptyCart(t *testing.T) {
	uc, _ := newCartUC(t)
	_, err := uc.CheckoutLink(context.Background(), "sess-1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestOrderMessageFormat(t *testing.T) {
	cart := &domain.Cart{Lines: []domain.CartLine{
		{ID: "l1", ProductName: "Lipstick", UnitPrice: 24.99, Quantity: 2, StockCeiling: 5},
	}}
	msg := usecase.OrderMessage(cart)
	assert.Contains(t, msg, "Hola, estoy interesado/a en finalizar la compra")
	assert.Contains(t, msg, "- 2x Lipstick - $49.98")
	assert.Contains(t, msg, "*Total a Pagar: $49.98*")
}

func TestOrderMessageIncludesVariantName(t *testing.T) {
	vid := uuid.New()
	cart := &domain.Cart{Lines: []domain.CartLine{
		{ID: "l1", ProductName: "Base Luminosa", VariantID: &vid, VariantName: "Arena", UnitPrice: 39.50, Quantity: 1, StockCeiling: 4},
		{ID: "l2", ProductName: "Lipstick", UnitPrice: 24.99, Quantity: 1, StockCeiling: 5},
	}}
	msg := usecase.OrderMessage(cart)
	assert.Contains(t, msg, "- 1x Base Luminosa (Arena) - $39.50")
	assert.Contains(t, msg, "- 1x Lipstick - $24.99")
	assert.Contains(t, msg, "*Total a Pagar: $64.49*")
}

func TestCheckoutURLEscapesMessage(t *testing.T) {
	url := usecase.CheckoutURL("50375771383", "hola mundo & more")
	assert.Equal(t, "https://wa.me/50375771383?text=hola+mundo+%26+more", url)
}
