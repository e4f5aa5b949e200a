package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/makeupglamours/shop/internal/domain"
)

// ConfigRepo reads and writes the single site_configs row. Missing row on
// first boot gets created from the provided defaults.
type ConfigRepo struct {
	db       *gorm.DB
	defaults domain.SiteConfig
}

func NewConfigRepo(db *gorm.DB, defaults domain.SiteConfig) *ConfigRepo {
	if defaults.ID == 0 {
		defaults.ID = 1
	}
	return &ConfigRepo{db: db, defaults: defaults}
}

func (r *ConfigRepo) Get(ctx context.Context) (*domain.SiteConfig, error) {
	var cfg domain.SiteConfig
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", r.defaults.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = r.defaults
			if err := r.db.WithContext(ctx).Create(&cfg).Error; err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *ConfigRepo) Update(ctx context.Context, patch domain.SiteConfigPatch) (*domain.SiteConfig, error) {
	cfg, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	patch.Apply(cfg)
	if err := r.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}
