package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makeupglamours/shop/internal/domain"
)

type SlideRepo struct{ db *gorm.DB }

func NewSlideRepo(db *gorm.DB) *SlideRepo { return &SlideRepo{db: db} }

// List devuelve los slides ordenados por DisplayOrder
func (r *SlideRepo) List(ctx context.Context) ([]domain.Slide, error) {
	var list []domain.Slide
	if err := r.db.WithContext(ctx).Order("display_order asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SlideRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Slide, error) {
	var s domain.Slide
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SlideRepo) Save(ctx context.Context, s *domain.Slide) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SlideRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Slide{}, "id = ?", id).Error
}
