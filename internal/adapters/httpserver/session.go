package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookie = "sid"
	adminCookie   = "admin_session"
)

func (s *Server) sign(payload []byte) string {
	h := hmac.New(sha256.New, s.sessionSecret)
	h.Write(payload)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return sig + "." + base64.RawURLEncoding.EncodeToString(payload)
}

func (s *Server) verify(value string) ([]byte, bool) {
	dot := -1
	for i := range value {
		if value[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(value[:dot])
	if err != nil {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(value[dot+1:])
	if err != nil {
		return nil, false
	}
	h := hmac.New(sha256.New, s.sessionSecret)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil, false
	}
	return payload, true
}

// sessionID returns the visitor session, minting and setting a fresh one
// when the cookie is absent or tampered with. The cart lives in the KV store
// under this id.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if payload, ok := s.verify(c.Value); ok {
			return string(payload)
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.sign([]byte(id)),
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type adminSession struct {
	User string `json:"user"`
	Exp  int64  `json:"exp"`
}

// isAdmin resolves the admin capability for this request. Handlers receive
// the result explicitly; there is no process-global admin flag.
func (s *Server) isAdmin(r *http.Request) (string, bool) {
	c, err := r.Cookie(adminCookie)
	if err != nil {
		return "", false
	}
	payload, ok := s.verify(c.Value)
	if !ok {
		return "", false
	}
	var sess adminSession
	if err := json.Unmarshal(payload, &sess); err != nil {
		return "", false
	}
	if time.Now().Unix() > sess.Exp {
		return "", false
	}
	return sess.User, true
}

func (s *Server) setAdminSession(w http.ResponseWriter, user string) {
	payload, _ := json.Marshal(adminSession{User: user, Exp: time.Now().Add(12 * time.Hour).Unix()})
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    s.sign(payload),
		Path:     "/",
		MaxAge:   60 * 60 * 12,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAdminSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: adminCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := s.isAdmin(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "admin requerido"})
		return false
	}
	return true
}
