package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

// DefaultSiteConfig is what a fresh install shows before the admin edits
// anything.
func DefaultSiteConfig() domain.SiteConfig {
	return domain.SiteConfig{
		ID:            1,
		SiteName:      "Makeup Glamours",
		PhoneNumber:   "50375771383",
		InstagramURL:  "https://instagram.com",
		SliderSpeedMS: 4000,
		ShowSoldOut:   true,
	}
}

// Seed fills the in-memory backend with the starter catalog and carousel so
// the storefront is browsable without a database.
func Seed(ctx context.Context, products *ProductRepo, slides *SlideRepo) error {
	prods := []domain.Product{
		{
			ID:          uuid.New(),
			Name:        "Labial Mate de Terciopelo",
			Price:       24.99,
			Description: "Labial mate cremoso y de larga duración con acabado aterciopelado, con Vitamina E.",
			Category:    "Labios",
			Active:      true,
			Stock:       15,
		},
		{
			ID:          uuid.New(),
			Name:        "Base de Maquillaje Resplandor Luminoso",
			Price:       39.50,
			Description: "Base ligera de cobertura media con acabado natural que dura todo el día.",
			Category:    "Rostro",
			Active:      true,
		},
		{
			ID:          uuid.New(),
			Name:        "Delineador Líquido a Prueba de Agua",
			Price:       19.99,
			Description: "Punta ultrafina, intensamente pigmentado, resistente al agua y a prueba de manchas.",
			Category:    "Ojos",
			Active:      true,
			Stock:       0,
		},
		{
			ID:          uuid.New(),
			Name:        "Bruma Hidratante de Agua de Rosas",
			Price:       28.00,
			Description: "Bruma refrescante que hidrata y fija el maquillaje con un brillo natural.",
			Category:    "Rostro",
			Active:      true,
			Stock:       12,
		},
	}
	for i := range prods {
		if err := products.Save(ctx, &prods[i]); err != nil {
			return err
		}
	}

	// the foundation ships in shades, each with its own stock
	shades := []struct {
		name  string
		stock int
	}{{"Marfil", 6}, {"Arena", 4}, {"Canela", 0}}
	for _, s := range shades {
		v := domain.Variant{ID: uuid.New(), ProductID: prods[1].ID, Name: s.name, Stock: s.stock}
		if err := products.SaveVariant(ctx, &v); err != nil {
			return err
		}
	}

	seedSlides := []domain.Slide{
		{
			ID:           uuid.New(),
			Title:        "Descubre Tu Brillo",
			Subtitle:     "Cosméticos limpios de alto rendimiento que te celebran. Compra nuestra nueva colección.",
			ButtonText:   "Comprar Ahora",
			ButtonLink:   "#products",
			DisplayOrder: 1,
		},
		{
			ID:           uuid.New(),
			Title:        "Esenciales de Verano",
			Subtitle:     "Bases ligeras y colores vibrantes para un look de verano impecable.",
			ButtonText:   "Explorar Colección",
			ButtonLink:   "#products",
			DisplayOrder: 2,
		},
		{
			ID:           uuid.New(),
			Title:        "Vegano y Libre de Crueldad",
			Subtitle:     "Belleza que se siente tan bien como se ve. Amable con tu piel y el planeta.",
			ButtonText:   "Saber Más",
			ButtonLink:   "#products",
			DisplayOrder: 3,
		},
	}
	for i := range seedSlides {
		if err := slides.Save(ctx, &seedSlides[i]); err != nil {
			return err
		}
	}
	return nil
}
