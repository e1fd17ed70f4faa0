// Package web serves the blog over HTTP: server-rendered pages backed by a
// cookie session, plus a small JSON API authenticated with bearer tokens.
package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// Handler holds the services and collaborators shared by every route.
type Handler struct {
	users         *services.UserService
	sessions      *services.SessionService
	posts         *services.PostService
	store         sessions.Store
	renderer      *renderer
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewHandler(
	l logging.Logger,
	us *services.UserService,
	ss *services.SessionService,
	ps *services.PostService,
	store sessions.Store,
	secretKey string,
	tokenValidity time.Duration,
) (*Handler, error) {
	rr, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		users:         us,
		sessions:      ss,
		posts:         ps,
		store:         store,
		renderer:      rr,
		logger:        l.With("module", "web"),
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}, nil
}

// Router wires every route. Middleware order: request id and access log,
// then identity resolution, then per-route guards.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.requestLogger, h.identity)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/token", h.apiToken).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.apiListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", h.apiGetPost).Methods(http.MethodGet)
	api.Handle("/posts/{id:[0-9]+}", h.bearerAuth(http.HandlerFunc(h.apiDeletePost))).Methods(http.MethodDelete)

	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/register", h.register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodGet)
	r.HandleFunc("/post/{id:[0-9]+}", h.showPost).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/new-post", h.requireAdmin(http.HandlerFunc(h.newPost))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/edit-post/{id:[0-9]+}", h.requireAdmin(http.HandlerFunc(h.editPost))).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/delete/{id:[0-9]+}", h.requireAdmin(http.HandlerFunc(h.deletePost))).Methods(http.MethodGet, http.MethodPost)

	// mux skips middleware for unmatched routes, so wrap the fallback explicitly.
	r.NotFoundHandler = h.requestLogger(h.identity(http.HandlerFunc(h.notFound)))

	return r
}
