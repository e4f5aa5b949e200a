package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/makeupglamours/shop/internal/domain"
)

type cartLineJSON struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	VariantID    string  `json:"variant_id,omitempty"`
	UnitPrice    float64 `json:"unit_price"`
	ImageURL     string  `json:"image_url,omitempty"`
	Quantity     int     `json:"quantity"`
	StockCeiling int     `json:"stock_ceiling"`
	Subtotal     float64 `json:"subtotal"`
}

func toCartJSON(cart *domain.Cart) map[string]any {
	lines := make([]cartLineJSON, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		out := cartLineJSON{
			ID:           l.ID,
			ProductID:    l.ProductID.String(),
			Name:         l.DisplayName(),
			UnitPrice:    l.UnitPrice,
			ImageURL:     l.ImageURL,
			Quantity:     l.Quantity,
			StockCeiling: l.StockCeiling,
			Subtotal:     l.Subtotal(),
		}
		if l.VariantID != nil {
			out.VariantID = l.VariantID.String()
		}
		lines = append(lines, out)
	}
	return map[string]any{"lines": lines, "count": cart.Count(), "total": cart.Total()}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	switch r.Method {
	case http.MethodGet:
		cart, err := s.carts.Get(r.Context(), sid)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, 200, toCartJSON(cart))
	case http.MethodPost:
		var in struct {
			ProductID string `json:"product_id"`
			VariantID string `json:"variant_id"`
			Qty       int    `json:"qty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "json", 400)
			return
		}
		productID, err := uuid.Parse(in.ProductID)
		if err != nil {
			http.Error(w, "product_id", 400)
			return
		}
		var variantID *uuid.UUID
		if in.VariantID != "" {
			vid, err := uuid.Parse(in.VariantID)
			if err != nil {
				http.Error(w, "variant_id", 400)
				return
			}
			variantID = &vid
		}
		if in.Qty == 0 {
			in.Qty = 1
		}
		cart, added, err := s.carts.Add(r.Context(), sid, productID, variantID, in.Qty)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		resp := toCartJSON(cart)
		resp["added"] = added
		if added == 0 {
			// sin stock restante: señal esperada, no error
			resp["status"] = "sold_out"
		} else {
			resp["status"] = "ok"
		}
		writeJSON(w, 200, resp)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	sid := s.sessionID(w, r)
	var in struct {
		LineID string `json:"line_id"`
		Qty    int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "json", 400)
		return
	}
	if in.LineID == "" {
		http.Error(w, "line_id", 400)
		return
	}
	cart, err := s.carts.UpdateQuantity(r.Context(), sid, in.LineID, in.Qty)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, 200, toCartJSON(cart))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	sid := s.sessionID(w, r)
	var in struct {
		LineID string `json:"line_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "json", 400)
		return
	}
	cart, err := s.carts.Remove(r.Context(), sid, in.LineID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, 200, toCartJSON(cart))
}

// handleCartCheckout arma el resumen del pedido y entrega el deep link de
// WhatsApp. Clientes de navegador reciben el redirect directo; clientes
// fetch piden JSON y abren la ventana ellos mismos. El carrito no se vacía:
// la venta se cierra por chat.
func (s *Server) handleCartCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	sid := s.sessionID(w, r)
	link, err := s.carts.CheckoutLink(r.Context(), sid)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") || r.Header.Get("X-Requested-With") == "fetch" {
		writeJSON(w, 200, map[string]any{"url": link})
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}
