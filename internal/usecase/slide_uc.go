package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

type SlideUC struct {
	Slides domain.SlideRepo
}

func (uc *SlideUC) List(ctx context.Context) ([]domain.Slide, error) {
	return uc.Slides.List(ctx)
}

// Create appends a slide at the end of the carousel. Empty fields get the
// placeholder copy the editor shows until the admin fills them in.
func (uc *SlideUC) Create(ctx context.Context, s *domain.Slide) error {
	if s == nil {
		return errors.New("slide nil")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Title == "" {
		s.Title = "Nuevo Título"
	}
	if s.ButtonText == "" {
		s.ButtonText = "Comprar Ahora"
	}
	if s.ButtonLink == "" {
		s.ButtonLink = "#"
	}
	if s.DisplayOrder == 0 {
		existing, err := uc.Slides.List(ctx)
		if err != nil {
			return err
		}
		s.DisplayOrder = len(existing) + 1
	}
	return uc.Slides.Save(ctx, s)
}

func (uc *SlideUC) Update(ctx context.Context, s *domain.Slide) error {
	if s == nil || s.ID == uuid.Nil {
		return errors.New("slide id vacío")
	}
	if _, err := uc.Slides.FindByID(ctx, s.ID); err != nil {
		return err
	}
	return uc.Slides.Save(ctx, s)
}

func (uc *SlideUC) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("slide id vacío")
	}
	return uc.Slides.Delete(ctx, id)
}
