package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:180;not null"`
	Price       float64   `gorm:"type:decimal(12,2);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"size:100;index"`
	Active      bool      `gorm:"default:true;index"`
	// Stock applies only while the product has no variants; once at least
	// one variant exists, the variant stocks are authoritative.
	Stock     int `gorm:"type:int;default:0"`
	Images    []Image
	Variants  []Variant
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Name      string    `gorm:"size:120;not null"`
	Stock     int       `gorm:"type:int;default:0"`
	ImageURL  string    `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	URL       string    `gorm:"size:255"`
	Alt       string    `gorm:"size:140"`
	CreatedAt time.Time
}

// TotalStock is the sellable stock: the sum over variants when the product
// has any, the base stock otherwise.
func (p *Product) TotalStock() int {
	if len(p.Variants) == 0 {
		return p.Stock
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// SoldOut reports whether nothing of this product can be bought.
func (p *Product) SoldOut() bool { return p.TotalStock() <= 0 }

// VariantByID returns the variant with the given id, or nil.
func (p *Product) VariantByID(id uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// MainImage is the image shown on cards and cart lines: the first product
// image, or empty when none was uploaded.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

type ProductFilter struct {
	Category    string
	Query       string
	IncludeSold bool
	Sort        string
	Page        int
	PageSize    int
}
