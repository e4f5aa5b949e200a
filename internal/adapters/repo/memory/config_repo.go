package memory

import (
	"context"
	"sync"
	"time"

	"github.com/makeupglamours/shop/internal/domain"
)

type ConfigRepo struct {
	mu  sync.RWMutex
	cfg domain.SiteConfig
}

func NewConfigRepo(initial domain.SiteConfig) *ConfigRepo {
	if initial.ID == 0 {
		initial.ID = 1
	}
	return &ConfigRepo{cfg: initial}
}

func (r *ConfigRepo) Get(_ context.Context) (*domain.SiteConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := r.cfg
	return &cp, nil
}

func (r *ConfigRepo) Update(_ context.Context, patch domain.SiteConfigPatch) (*domain.SiteConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patch.Apply(&r.cfg)
	r.cfg.UpdatedAt = time.Now()
	cp := r.cfg
	return &cp, nil
}
