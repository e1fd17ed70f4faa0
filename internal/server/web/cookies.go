package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gorilla/sessions"
)

const tokenValueKey = "token"

// NewCookieStore returns the signed cookie store that carries the session
// token and flash messages.
func NewCookieStore(secret string, maxAge time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// cookie returns the request's cookie session. A cookie that fails to
// decode, e.g. after a secret rotation, yields a fresh empty session.
func (h *Handler) cookie(r *http.Request) *sessions.Session {
	s, err := h.store.Get(r, common.SessionCookieName)
	if err != nil {
		h.logger.Debug(r.Context(), "discarding undecodable session cookie", "error", err)
	}
	return s
}

func (h *Handler) sessionToken(r *http.Request) string {
	tok, _ := h.cookie(r).Values[tokenValueKey].(string)
	return tok
}

func (h *Handler) setSessionToken(w http.ResponseWriter, r *http.Request, token string) error {
	s := h.cookie(r)
	if token == "" {
		delete(s.Values, tokenValueKey)
	} else {
		s.Values[tokenValueKey] = token
	}
	return s.Save(r, w)
}

// flash queues msg for the next rendered page.
func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	s := h.cookie(r)
	s.AddFlash(msg)
	if err := s.Save(r, w); err != nil {
		h.logger.Error(r.Context(), "error saving flash", "error", err)
	}
}

// popFlashes drains queued flash messages. It must run before the response
// body is written.
func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	s := h.cookie(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		h.logger.Error(r.Context(), "error saving session", "error", err)
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
