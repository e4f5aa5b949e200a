package domain

import (
	"context"
	"io"

	"github.com/google/uuid"
)

type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Save(ctx context.Context, p *Product) error
	// Delete removes the product with its variants and image rows and
	// returns the image URLs so the caller can clean up stored files.
	Delete(ctx context.Context, id uuid.UUID) ([]string, error)
	AddImages(ctx context.Context, productID uuid.UUID, imgs []Image) error
	ClearImages(ctx context.Context, productID uuid.UUID) ([]string, error)
	SaveVariant(ctx context.Context, v *Variant) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error
	ListVariants(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type SlideRepo interface {
	List(ctx context.Context) ([]Slide, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Slide, error)
	Save(ctx context.Context, s *Slide) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SiteConfigRepo interface {
	Get(ctx context.Context) (*SiteConfig, error)
	Update(ctx context.Context, patch SiteConfigPatch) (*SiteConfig, error)
}

// KVStore is the durable key-value collaborator carts and session state are
// persisted through. Get returns ErrNotFound for missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// FileStorage stores uploaded images and serves them back by public URL.
type FileStorage interface {
	Save(name string, r io.Reader) (string, error)
	Delete(publicURL string) error
}

// Authenticator gates admin mode. Implementations decide where credentials
// live; handlers only see the boolean.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// Describer suggests marketing copy for a product. Optional collaborator;
// a nil Describer disables the feature.
type Describer interface {
	Suggest(ctx context.Context, name, category string) (string, error)
}
