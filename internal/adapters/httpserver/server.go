package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/makeupglamours/shop/internal/domain"
	"github.com/makeupglamours/shop/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	products  *usecase.ProductUC
	slides    *usecase.SlideUC
	siteCfg   *usecase.ConfigUC
	carts     *usecase.CartUC
	storage   domain.FileStorage
	auth      domain.Authenticator
	describer domain.Describer
	oauthCfg  *oauth2.Config

	adminAllowed  map[string]struct{}
	sessionSecret []byte
	uploadsDir    string
}

type Options struct {
	Products      *usecase.ProductUC
	Slides        *usecase.SlideUC
	SiteConfig    *usecase.ConfigUC
	Carts         *usecase.CartUC
	Storage       domain.FileStorage
	Auth          domain.Authenticator
	Describer     domain.Describer
	OAuth         *oauth2.Config
	AdminAllowed  map[string]struct{}
	SessionSecret string
	UploadsDir    string
}

func New(o Options) http.Handler {
	secret := o.SessionSecret
	if secret == "" {
		secret = "dev-insecure"
	}
	uploads := o.UploadsDir
	if uploads == "" {
		uploads = "uploads"
	}
	s := &Server{
		mux:           http.NewServeMux(),
		products:      o.Products,
		slides:        o.Slides,
		siteCfg:       o.SiteConfig,
		carts:         o.Carts,
		storage:       o.Storage,
		auth:          o.Auth,
		describer:     o.Describer,
		oauthCfg:      o.OAuth,
		adminAllowed:  o.AdminAllowed,
		sessionSecret: []byte(secret),
		uploadsDir:    uploads,
	}
	s.routes()
	return Chain(s.mux,
		PublicRateLimit(map[string]int{
			"/admin/login":       10,
			"/api/cart/checkout": 15,
		}),
		RateLimit(120),
		SecurityAndStaticCache,
		Gzip,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))

	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
	s.mux.HandleFunc("/api/categories", s.apiCategories)
	s.mux.HandleFunc("/api/slides", s.apiSlides)
	s.mux.HandleFunc("/api/slides/", s.apiSlideByID)
	s.mux.HandleFunc("/api/config", s.apiConfig)

	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/api/cart/checkout", s.handleCartCheckout)

	s.mux.HandleFunc("/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/api/admin/session", s.apiAdminSession)
	s.mux.HandleFunc("/api/admin/upload", s.apiUpload)
	s.mux.HandleFunc("/api/admin/describe", s.apiDescribe)
	s.mux.HandleFunc("/api/admin/config/logo", s.apiConfigLogo)
	s.mux.HandleFunc("/admin/export/xlsx", s.handleAdminExportXLSX)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no encontrado"})
	case errors.Is(err, domain.ErrVariantRequired),
		errors.Is(err, domain.ErrVariantMismatch),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("api")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "interno"})
	}
}

// --- catálogo ---

type variantJSON struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Stock    int       `json:"stock"`
	ImageURL string    `json:"image_url,omitempty"`
}

type productJSON struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Stock       int           `json:"stock"`
	TotalStock  int           `json:"total_stock"`
	SoldOut     bool          `json:"sold_out"`
	Images      []string      `json:"images"`
	Variants    []variantJSON `json:"variants"`
	CreatedAt   string        `json:"created_at"`
}

func toProductJSON(p *domain.Product) productJSON {
	out := productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Stock:       p.Stock,
		TotalStock:  p.TotalStock(),
		SoldOut:     p.SoldOut(),
		Images:      []string{},
		Variants:    []variantJSON{},
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, im := range p.Images {
		out.Images = append(out.Images, im.URL)
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, variantJSON{ID: v.ID, Name: v.Name, Stock: v.Stock, ImageURL: v.ImageURL})
	}
	return out
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		f := domain.ProductFilter{
			Category: q.Get("category"),
			Query:    q.Get("q"),
			Sort:     q.Get("sort"),
			Page:     atoiDefault(q.Get("page"), 1),
			PageSize: atoiDefault(q.Get("page_size"), 20),
		}
		_, admin := s.isAdmin(r)
		if admin {
			f.IncludeSold = true
		} else if cfg, err := s.siteCfg.Get(r.Context()); err == nil {
			f.IncludeSold = cfg.ShowSoldOut
		}
		list, total, err := s.products.List(r.Context(), f)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		items := make([]productJSON, 0, len(list))
		for i := range list {
			items = append(items, toProductJSON(&list[i]))
		}
		writeJSON(w, 200, map[string]any{"products": items, "total": total})
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var in struct {
			Name        string   `json:"name"`
			Price       float64  `json:"price"`
			Description string   `json:"description"`
			Category    string   `json:"category"`
			Stock       int      `json:"stock"`
			Images      []string `json:"images"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		p := &domain.Product{Name: in.Name, Price: in.Price, Description: in.Description, Category: in.Category, Stock: in.Stock}
		for _, u := range in.Images {
			p.Images = append(p.Images, domain.Image{ID: uuid.New(), URL: u})
		}
		if err := s.products.Create(r.Context(), p); err != nil {
			writeDomainErr(w, err)
			return
		}
		saved, err := s.products.Get(r.Context(), p.ID)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProductJSON(saved))
	default:
		http.Error(w, "method", 405)
	}
}

// apiProductByID atiende /api/products/{id} y los subrecursos
// /variants[/{vid}] e /images; el routing fino se resuelve acá para no
// multiplicar patrones en el mux.
func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/products/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		http.Error(w, "id", 400)
		return
	}

	if len(parts) >= 2 {
		switch parts[1] {
		case "variants":
			s.productVariants(w, r, id, parts[2:])
		case "images":
			s.productImages(w, r, id)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, toProductJSON(p))
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		existing, err := s.products.Get(r.Context(), id)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		var in struct {
			Name        *string  `json:"name"`
			Price       *float64 `json:"price"`
			Description *string  `json:"description"`
			Category    *string  `json:"category"`
			Stock       *int     `json:"stock"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		if in.Name != nil {
			existing.Name = *in.Name
		}
		if in.Price != nil {
			existing.Price = *in.Price
		}
		if in.Description != nil {
			existing.Description = *in.Description
		}
		if in.Category != nil {
			existing.Category = *in.Category
		}
		if in.Stock != nil {
			existing.Stock = *in.Stock
		}
		if err := s.products.Update(r.Context(), existing); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, toProductJSON(existing))
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		urls, err := s.products.Delete(r.Context(), id)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		for _, u := range urls {
			if err := s.storage.Delete(u); err != nil {
				log.Warn().Err(err).Str("url", u).Msg("no se pudo borrar imagen")
			}
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) productVariants(w http.ResponseWriter, r *http.Request, productID uuid.UUID, rest []string) {
	if len(rest) == 1 && rest[0] != "" {
		if r.Method != http.MethodDelete {
			http.Error(w, "method", 405)
			return
		}
		if !s.requireAdmin(w, r) {
			return
		}
		vid, err := uuid.Parse(rest[0])
		if err != nil {
			http.Error(w, "id", 400)
			return
		}
		if err := s.products.DeleteVariant(r.Context(), vid); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		list, err := s.products.ListVariants(r.Context(), productID)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		out := make([]variantJSON, 0, len(list))
		for _, v := range list {
			out = append(out, variantJSON{ID: v.ID, Name: v.Name, Stock: v.Stock, ImageURL: v.ImageURL})
		}
		writeJSON(w, 200, out)
	case http.MethodPost, http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		var in struct {
			ID       *uuid.UUID `json:"id"`
			Name     string     `json:"name"`
			Stock    int        `json:"stock"`
			ImageURL string     `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		v := &domain.Variant{ProductID: productID, Name: in.Name, Stock: in.Stock, ImageURL: in.ImageURL}
		if in.ID != nil {
			v.ID = *in.ID
		}
		if err := s.products.SaveVariant(r.Context(), v); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, variantJSON{ID: v.ID, Name: v.Name, Stock: v.Stock, ImageURL: v.ImageURL})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) productImages(w http.ResponseWriter, r *http.Request, productID uuid.UUID) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodPost:
		var in struct {
			URLs []string `json:"urls"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		imgs := make([]domain.Image, 0, len(in.URLs))
		for _, u := range in.URLs {
			imgs = append(imgs, domain.Image{ID: uuid.New(), URL: u})
		}
		if err := s.products.AddImages(r.Context(), productID, imgs); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"status": "ok"})
	case http.MethodDelete:
		urls, err := s.products.ClearImages(r.Context(), productID)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		for _, u := range urls {
			if err := s.storage.Delete(u); err != nil {
				log.Warn().Err(err).Str("url", u).Msg("no se pudo borrar imagen")
			}
		}
		writeJSON(w, 200, map[string]any{"status": "ok", "removed": len(urls)})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	cats, err := s.products.Categories(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, 200, cats)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return def
		}
		n = n*10 + int(c-'0')
	}
	if n == 0 {
		return def
	}
	return n
}
