package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

type SlideRepo struct {
	mu     sync.RWMutex
	slides map[uuid.UUID]*domain.Slide
}

func NewSlideRepo() *SlideRepo {
	return &SlideRepo{slides: make(map[uuid.UUID]*domain.Slide)}
}

func (r *SlideRepo) List(_ context.Context) ([]domain.Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Slide, 0, len(r.slides))
	for _, s := range r.slides {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *SlideRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slides[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *SlideRepo) Save(_ context.Context, s *domain.Slide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	if existing, ok := r.slides[s.ID]; ok {
		cp.CreatedAt = existing.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	cp.UpdatedAt = time.Now()
	r.slides[s.ID] = &cp
	return nil
}

func (r *SlideRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slides, id)
	return nil
}
