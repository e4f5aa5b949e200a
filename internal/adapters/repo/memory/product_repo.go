package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

// ProductRepo keeps the catalog in process. It backs the bundled-data
// deployment flavor and the tests; state is guarded by an RWMutex because
// the HTTP server hits it from many goroutines.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Images = append([]domain.Image(nil), p.Images...)
	cp.Variants = append([]domain.Variant(nil), p.Variants...)
	return &cp
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(f.Query))) {
			continue
		}
		if !f.IncludeSold && p.SoldOut() {
			continue
		}
		list = append(list, p)
	}

	switch f.Sort {
	case "price_desc":
		sort.Slice(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	case "price_asc":
		sort.Slice(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case "newest":
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	default:
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}

	total := int64(len(list))
	page, size := f.Page, f.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	start := (page - 1) * size
	if start > len(list) {
		start = len(list)
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}

	out := make([]domain.Product, 0, end-start)
	for _, p := range list[start:end] {
		out = append(out, *cloneProduct(p))
	}
	return out, total, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.products[p.ID]; ok {
		cp := cloneProduct(p)
		cp.CreatedAt = existing.CreatedAt
		if len(p.Images) == 0 {
			cp.Images = existing.Images
		}
		if len(p.Variants) == 0 {
			cp.Variants = existing.Variants
		}
		cp.UpdatedAt = now
		r.products[p.ID] = cp
		return nil
	}
	cp := cloneProduct(p)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	r.products[p.ID] = cp
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	urls := []string{}
	for _, im := range p.Images {
		urls = append(urls, im.URL)
	}
	for _, v := range p.Variants {
		if v.ImageURL != "" {
			urls = append(urls, v.ImageURL)
		}
	}
	delete(r.products, id)
	return urls, nil
}

func (r *ProductRepo) AddImages(_ context.Context, productID uuid.UUID, imgs []domain.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range imgs {
		if imgs[i].ID == uuid.Nil {
			imgs[i].ID = uuid.New()
		}
		imgs[i].ProductID = productID
		if imgs[i].CreatedAt.IsZero() {
			imgs[i].CreatedAt = time.Now()
		}
		p.Images = append(p.Images, imgs[i])
	}
	return nil
}

func (r *ProductRepo) ClearImages(_ context.Context, productID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	urls := make([]string, 0, len(p.Images))
	for _, im := range p.Images {
		urls = append(urls, im.URL)
	}
	p.Images = nil
	return urls, nil
}

func (r *ProductRepo) SaveVariant(_ context.Context, v *domain.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[v.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range p.Variants {
		if p.Variants[i].ID == v.ID {
			v.CreatedAt = p.Variants[i].CreatedAt
			v.UpdatedAt = time.Now()
			p.Variants[i] = *v
			return nil
		}
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	p.Variants = append(p.Variants, *v)
	return nil
}

func (r *ProductRepo) DeleteVariant(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		for i := range p.Variants {
			if p.Variants[i].ID == id {
				p.Variants = append(p.Variants[:i], p.Variants[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) ListVariants(_ context.Context, productID uuid.UUID) ([]domain.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := append([]domain.Variant(nil), p.Variants...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProductRepo) DistinctCategories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{}
	cats := []string{}
	for _, p := range r.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats, nil
}
