package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

type slideJSON struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	ButtonText   string    `json:"button_text"`
	ButtonLink   string    `json:"button_link"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"order"`
}

func toSlideJSON(s domain.Slide) slideJSON {
	return slideJSON{
		ID:           s.ID,
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		ButtonText:   s.ButtonText,
		ButtonLink:   s.ButtonLink,
		ImageURL:     s.ImageURL,
		DisplayOrder: s.DisplayOrder,
	}
}

type slideInput struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	ButtonText   string `json:"button_text"`
	ButtonLink   string `json:"button_link"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"order"`
}

func (s *Server) apiSlides(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.slides.List(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		out := make([]slideJSON, 0, len(list))
		for _, sl := range list {
			out = append(out, toSlideJSON(sl))
		}
		writeJSON(w, 200, out)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var in slideInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		sl := &domain.Slide{
			Title:        in.Title,
			Subtitle:     in.Subtitle,
			ButtonText:   in.ButtonText,
			ButtonLink:   in.ButtonLink,
			ImageURL:     in.ImageURL,
			DisplayOrder: in.DisplayOrder,
		}
		if err := s.slides.Create(r.Context(), sl); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSlideJSON(*sl))
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiSlideByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/slides/"), "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodPut:
		existing, err := s.slides.Slides.FindByID(r.Context(), id)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		var in slideInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		existing.Title = in.Title
		existing.Subtitle = in.Subtitle
		existing.ButtonText = in.ButtonText
		existing.ButtonLink = in.ButtonLink
		if in.ImageURL != "" {
			existing.ImageURL = in.ImageURL
		}
		if in.DisplayOrder != 0 {
			existing.DisplayOrder = in.DisplayOrder
		}
		if err := s.slides.Update(r.Context(), existing); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, toSlideJSON(*existing))
	case http.MethodDelete:
		if err := s.slides.Delete(r.Context(), id); err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
	default:
		http.Error(w, "method", 405)
	}
}

type configJSON struct {
	SiteName      string `json:"site_name"`
	LogoURL       string `json:"logo"`
	PhoneNumber   string `json:"phone_number"`
	InstagramURL  string `json:"instagram_url"`
	SliderSpeedMS int    `json:"slider_speed"`
	ShowSoldOut   bool   `json:"show_sold_out"`
}

func (s *Server) apiConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := s.siteCfg.Get(r.Context())
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, configJSON{
			SiteName:      cfg.SiteName,
			LogoURL:       cfg.LogoURL,
			PhoneNumber:   cfg.PhoneNumber,
			InstagramURL:  cfg.InstagramURL,
			SliderSpeedMS: cfg.SliderSpeedMS,
			ShowSoldOut:   cfg.ShowSoldOut,
		})
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		var in struct {
			SiteName      *string `json:"site_name"`
			PhoneNumber   *string `json:"phone_number"`
			InstagramURL  *string `json:"instagram_url"`
			SliderSpeedMS *int    `json:"slider_speed"`
			ShowSoldOut   *bool   `json:"show_sold_out"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		cfg, err := s.siteCfg.Update(r.Context(), domain.SiteConfigPatch{
			SiteName:      in.SiteName,
			PhoneNumber:   in.PhoneNumber,
			InstagramURL:  in.InstagramURL,
			SliderSpeedMS: in.SliderSpeedMS,
			ShowSoldOut:   in.ShowSoldOut,
		})
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, configJSON{
			SiteName:      cfg.SiteName,
			LogoURL:       cfg.LogoURL,
			PhoneNumber:   cfg.PhoneNumber,
			InstagramURL:  cfg.InstagramURL,
			SliderSpeedMS: cfg.SliderSpeedMS,
			ShowSoldOut:   cfg.ShowSoldOut,
		})
	default:
		http.Error(w, "method", 405)
	}
}
