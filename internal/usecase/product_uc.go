package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, errors.New("product id vacío")
	}
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("nombre vacío")
	}
	if p.Price < 0 {
		return errors.New("precio negativo")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Active = true
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		return errors.New("product id vacío")
	}
	if p.Price < 0 {
		return errors.New("precio negativo")
	}
	return uc.Products.Save(ctx, p)
}

// Delete removes the product and returns every image URL that was attached
// to it or its variants so the handler can purge the files.
func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	if id == uuid.Nil {
		return nil, errors.New("product id vacío")
	}
	return uc.Products.Delete(ctx, id)
}

func (uc *ProductUC) AddImages(ctx context.Context, productID uuid.UUID, imgs []domain.Image) error {
	return uc.Products.AddImages(ctx, productID, imgs)
}

func (uc *ProductUC) ClearImages(ctx context.Context, productID uuid.UUID) ([]string, error) {
	return uc.Products.ClearImages(ctx, productID)
}

func (uc *ProductUC) Categories(ctx context.Context) ([]string, error) {
	return uc.Products.DistinctCategories(ctx)
}

// --- Variantes ---

func (uc *ProductUC) SaveVariant(ctx context.Context, v *domain.Variant) error {
	if v == nil {
		return errors.New("variant nil")
	}
	if v.ProductID == uuid.Nil {
		return errors.New("variant sin producto")
	}
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("variant sin nombre")
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return uc.Products.SaveVariant(ctx, v)
}

func (uc *ProductUC) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("variant id vacío")
	}
	return uc.Products.DeleteVariant(ctx, id)
}

func (uc *ProductUC) ListVariants(ctx context.Context, productID uuid.UUID) ([]domain.Variant, error) {
	if productID == uuid.Nil {
		return nil, errors.New("product id vacío")
	}
	return uc.Products.ListVariants(ctx, productID)
}
