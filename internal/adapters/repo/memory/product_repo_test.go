package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeupglamours/shop/internal/domain"
)

func seedCatalog(t *testing.T, r *ProductRepo) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []*domain.Product{
		{ID: uuid.New(), Name: "Labial Rojo", Category: "Labios", Price: 20, Stock: 5, Active: true},
		{ID: uuid.New(), Name: "Labial Nude", Category: "Labios", Price: 18, Stock: 0, Active: true},
		{ID: uuid.New(), Name: "Sombra Dorada", Category: "Ojos", Price: 25, Stock: 3, Active: true},
		{ID: uuid.New(), Name: "Descatalogado", Category: "Ojos", Price: 9, Stock: 4, Active: false},
	} {
		require.NoError(t, r.Save(ctx, p))
	}
}

func TestProductRepoListFilters(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo()
	seedCatalog(t, r)

	list, total, err := r.List(ctx, domain.ProductFilter{IncludeSold: true})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	list, total, err = r.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, p := range list {
		assert.False(t, p.SoldOut())
	}

	list, _, err = r.List(ctx, domain.ProductFilter{Category: "Labios", IncludeSold: true})
	require.NoError(t, err)
	require.Len(t, list, 2)

	list, _, err = r.List(ctx, domain.ProductFilter{Query: "dorada", IncludeSold: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sombra Dorada", list[0].Name)

	list, _, err = r.List(ctx, domain.ProductFilter{Sort: "price_desc", IncludeSold: true})
	require.NoError(t, err)
	assert.Equal(t, "Sombra Dorada", list[0].Name)
}

func TestProductRepoSavePreservesNested(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo()

	id := uuid.New()
	p := &domain.Product{ID: id, Name: "Base", Price: 30, Active: true}
	require.NoError(t, r.Save(ctx, p))
	require.NoError(t, r.AddImages(ctx, id, []domain.Image{{URL: "/uploads/base.jpg"}}))
	require.NoError(t, r.SaveVariant(ctx, &domain.Variant{ProductID: id, Name: "Beige", Stock: 2}))

	// un update sin imágenes ni variantes no las pisa
	require.NoError(t, r.Save(ctx, &domain.Product{ID: id, Name: "Base Renombrada", Price: 32, Active: true}))

	saved, err := r.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Base Renombrada", saved.Name)
	assert.Len(t, saved.Images, 1)
	assert.Len(t, saved.Variants, 1)
}

func TestProductRepoDistinctCategories(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo()
	seedCatalog(t, r)

	cats, err := r.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Labios", "Ojos"}, cats)
}
