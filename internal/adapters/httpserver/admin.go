package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/makeupglamours/shop/internal/domain"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "json", 400)
		return
	}
	if !s.auth.Authenticate(in.Username, in.Password) {
		log.Warn().Str("user", in.Username).Msg("login de admin rechazado")
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "credenciales inválidas"})
		return
	}
	s.setAdminSession(w, in.Username)
	writeJSON(w, 200, map[string]any{"status": "ok", "user": in.Username})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	s.clearAdminSession(w)
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) apiAdminSession(w http.ResponseWriter, r *http.Request) {
	user, ok := s.isAdmin(r)
	writeJSON(w, 200, map[string]any{"admin": ok, "user": user})
}

func (s *Server) apiUpload(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file", 400)
		return
	}
	defer file.Close()
	url, err := s.storage.Save(header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("name", header.Filename).Msg("upload")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "no se pudo guardar"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}

func (s *Server) apiConfigLogo(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file", 400)
		return
	}
	defer file.Close()
	cfg, err := s.siteCfg.UpdateLogo(r.Context(), header.Filename, file)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"logo": cfg.LogoURL})
}

func (s *Server) apiDescribe(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if s.describer == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]any{"error": "sin OPENAI_API_KEY"})
		return
	}
	var in struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "json", 400)
		return
	}
	text, err := s.describer.Suggest(r.Context(), in.Name, in.Category)
	if err != nil {
		log.Error().Err(err).Msg("describe")
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "openai_error"})
		return
	}
	writeJSON(w, 200, map[string]any{"description": text})
}

// handleAdminExportXLSX vuelca el catálogo completo (productos y variantes)
// a una planilla para control de inventario fuera de la tienda.
func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	list, _, err := s.products.List(r.Context(), domain.ProductFilter{IncludeSold: true, Page: 1, PageSize: 10000})
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Catalogo"
	_ = f.SetSheetName("Sheet1", sheet)
	headers := []string{"Producto", "Variante", "Categoría", "Precio", "Stock"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	row := 2
	for _, p := range list {
		if len(p.Variants) == 0 {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Name)
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Category)
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Price)
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Stock)
			row++
			continue
		}
		for _, v := range p.Variants {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Name)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), v.Name)
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Category)
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Price)
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), v.Stock)
			row++
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="catalogo.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("export xlsx")
	}
}

// --- Google OAuth (opcional) ---

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.NotFound(w, r)
		return
	}
	state := s.sign([]byte("oauth"))
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.NotFound(w, r)
		return
	}
	state := r.URL.Query().Get("state")
	if _, ok := s.verify(state); !ok {
		http.Error(w, "state", 400)
		return
	}
	code := r.URL.Query().Get("code")
	token, err := s.oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth", 502)
		return
	}
	client := s.oauthCfg.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Error().Err(err).Msg("oauth userinfo")
		http.Error(w, "oauth", 502)
		return
	}
	defer resp.Body.Close()
	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		http.Error(w, "oauth", 502)
		return
	}
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if _, ok := s.adminAllowed[email]; !ok {
		log.Warn().Str("email", email).Msg("email no habilitado para admin")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	s.setAdminSession(w, email)
	http.Redirect(w, r, "/", http.StatusFound)
}
