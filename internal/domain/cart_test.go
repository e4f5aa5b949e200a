package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProduct(stock int) *Product {
	return &Product{ID: uuid.New(), Name: "Labial Mate", Price: 24.99, Stock: stock}
}

func productWithVariants(stocks ...int) *Product {
	p := &Product{ID: uuid.New(), Name: "Base Luminosa", Price: 39.50}
	for i, s := range stocks {
		p.Variants = append(p.Variants, Variant{
			ID:        uuid.New(),
			ProductID: p.ID,
			Name:      []string{"Marfil", "Arena", "Canela"}[i%3],
			Stock:     s,
		})
	}
	return p
}

func TestCartAddClampsToStock(t *testing.T) {
	p := baseProduct(3)
	var cart Cart

	added, err := cart.Add(p, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, 3, cart.Lines[0].StockCeiling)
	assert.Equal(t, p.ID.String()+"-base", cart.Lines[0].ID)
}

func TestCartAddWhenFullIsNoOp(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	_, err := cart.Add(p, nil, 3)
	require.NoError(t, err)

	added, err := cart.Add(p, nil, 1)
	require.NoError(t, err)
	assert.Zero(t, added)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCartAddOneAtATimeNeverExceedsStock(t *testing.T) {
	p := baseProduct(4)
	var cart Cart
	for i := 0; i < 10; i++ {
		_, err := cart.Add(p, nil, 1)
		require.NoError(t, err)
	}
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
}

func TestCartAddVariantStockIsAuthoritative(t *testing.T) {
	p := productWithVariants(2, 0)
	p.Stock = 99 // base stock must be ignored once variants exist
	var cart Cart

	soldOut := &p.Variants[1]
	added, err := cart.Add(p, soldOut, 1)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.True(t, cart.IsEmpty())

	inStock := &p.Variants[0]
	added, err = cart.Add(p, inStock, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, LineID(p.ID, &inStock.ID), cart.Lines[0].ID)
}

func TestCartAddSeparateLinesPerVariant(t *testing.T) {
	p := productWithVariants(2, 3)
	var cart Cart
	_, err := cart.Add(p, &p.Variants[0], 1)
	require.NoError(t, err)
	_, err = cart.Add(p, &p.Variants[1], 1)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Count())
}

func TestCartAddVariantRequired(t *testing.T) {
	p := productWithVariants(2)
	var cart Cart
	_, err := cart.Add(p, nil, 1)
	assert.ErrorIs(t, err, ErrVariantRequired)
	assert.True(t, cart.IsEmpty())
}

func TestCartAddVariantMismatch(t *testing.T) {
	p := productWithVariants(2)
	other := Variant{ID: uuid.New(), ProductID: uuid.New(), Name: "Ajena", Stock: 5}
	var cart Cart
	_, err := cart.Add(p, &other, 1)
	assert.ErrorIs(t, err, ErrVariantMismatch)
}

func TestCartAddInvalidQuantity(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	for _, qty := range []int{0, -1} {
		_, err := cart.Add(p, nil, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestCartUpdateQuantityClampsToLineCeiling(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	_, err := cart.Add(p, nil, 2)
	require.NoError(t, err)

	lineID := cart.Lines[0].ID
	cart.UpdateQuantity(lineID, 10)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	cart.UpdateQuantity(lineID, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	_, err := cart.Add(p, nil, 2)
	require.NoError(t, err)

	lineID := cart.Lines[0].ID
	cart.UpdateQuantity(lineID, 0)
	assert.True(t, cart.IsEmpty())

	// same for negative quantities
	_, err = cart.Add(p, nil, 2)
	require.NoError(t, err)
	cart.UpdateQuantity(lineID, -4)
	assert.True(t, cart.IsEmpty())
}

func TestCartUpdateQuantityUnknownLine(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	_, err := cart.Add(p, nil, 1)
	require.NoError(t, err)

	cart.UpdateQuantity("missing-line", 5)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	_, err := cart.Add(p, nil, 1)
	require.NoError(t, err)

	lineID := cart.Lines[0].ID
	cart.Remove(lineID)
	assert.True(t, cart.IsEmpty())
	cart.Remove(lineID)
	assert.True(t, cart.IsEmpty())
}

func TestCartRemoveResetsAvailability(t *testing.T) {
	p := baseProduct(3)
	var cart Cart
	_, err := cart.Add(p, nil, 3)
	require.NoError(t, err)

	cart.Remove(cart.Lines[0].ID)

	added, err := cart.Add(p, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCartTotals(t *testing.T) {
	p1 := baseProduct(10)
	p1.Price = 24.99
	p2 := baseProduct(10)
	p2.Price = 19.99

	var cart Cart
	_, err := cart.Add(p1, nil, 2)
	require.NoError(t, err)
	_, err = cart.Add(p2, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, cart.Count())
	assert.InDelta(t, 69.97, cart.Total(), 0.001)
	assert.InDelta(t, 49.98, cart.Lines[0].Subtotal(), 0.001)
}

func TestCartLineDisplayName(t *testing.T) {
	l := CartLine{ProductName: "Labial Mate"}
	assert.Equal(t, "Labial Mate", l.DisplayName())
	l.VariantName = "Rojo Cereza"
	assert.Equal(t, "Labial Mate (Rojo Cereza)", l.DisplayName())
}

func TestCartLineSnapshotsVariantImage(t *testing.T) {
	p := productWithVariants(5)
	p.Images = []Image{{URL: "/uploads/base.jpg"}}
	p.Variants[0].ImageURL = "/uploads/marfil.jpg"

	var cart Cart
	_, err := cart.Add(p, &p.Variants[0], 1)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/marfil.jpg", cart.Lines[0].ImageURL)
}

func TestProductTotalStock(t *testing.T) {
	p := baseProduct(7)
	assert.Equal(t, 7, p.TotalStock())
	assert.False(t, p.SoldOut())

	pv := productWithVariants(2, 0, 3)
	pv.Stock = 50
	assert.Equal(t, 5, pv.TotalStock())

	empty := productWithVariants(0, 0)
	assert.True(t, empty.SoldOut())
}
