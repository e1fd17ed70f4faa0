package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/gorilla/mux"
)

const (
	msgEmailRegistered = "You have already registered with that email, please try login"
	msgNameTaken       = "That name is already taken."
	msgUnknownEmail    = "This email does not exist, please try again"
	msgWrongPassword   = "The password does not match the email, please try again"
	msgTitleTaken      = "A post with that title already exists."
	msgPasswordTooLong = "Password is too long."
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// parseForm reads the submitted form, rejecting oversized bodies.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (*form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "Malformed form submission.")
		return nil, false
	}
	return newForm(r.PostForm), true
}

// storeError turns a service error into a response for page handlers.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.notFound(w, r)
	case errors.Is(err, common.ErrorUnauthorized):
		redirect(w, r, "/login")
	case errors.Is(err, common.ErrorForbidden):
		h.errorPage(w, r, http.StatusForbidden, "You are not allowed to do that.")
	default:
		h.serverError(w, r, err)
	}
}

// startSession logs user in, replacing whatever session the client had.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	token, err := h.sessions.Login(r.Context(), h.sessionToken(r), user)
	if err != nil {
		return err
	}
	return h.setSessionToken(w, r, token)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	items, err := h.posts.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index.html", &page{Posts: items})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "register.html", &page{Form: newForm(nil)})
		return
	}

	f, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	validateRegister(f)
	if !f.Valid() {
		h.render(w, r, http.StatusBadRequest, "register.html", &page{Form: f})
		return
	}

	user, err := h.users.Register(r.Context(), f.Get("email"), f.Get("name"), f.Raw("password"))
	switch {
	case errors.Is(err, common.ErrorEmailTaken):
		h.flash(w, r, msgEmailRegistered)
		redirect(w, r, "/register")
		return
	case errors.Is(err, common.ErrorNameTaken):
		h.flash(w, r, msgNameTaken)
		redirect(w, r, "/register")
		return
	case errors.Is(err, common.ErrorValidation):
		f.Errors["password"] = msgPasswordTooLong
		h.render(w, r, http.StatusBadRequest, "register.html", &page{Form: f})
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", user.ID)

	if err := h.startSession(w, r, user); err != nil {
		h.serverError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "login.html", &page{Form: newForm(nil)})
		return
	}

	f, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	validateLogin(f)
	if !f.Valid() {
		h.render(w, r, http.StatusBadRequest, "login.html", &page{Form: f})
		return
	}

	user, err := h.users.Authenticate(r.Context(), f.Get("email"), f.Raw("password"))
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.flash(w, r, msgUnknownEmail)
		redirect(w, r, "/login")
		return
	case errors.Is(err, common.ErrorInvalidPassword):
		h.flash(w, r, msgWrongPassword)
		redirect(w, r, "/login")
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		h.serverError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), h.sessionToken(r)); err != nil {
		h.logger.Error(r.Context(), "error revoking session", "error", err)
	}
	if err := h.setSessionToken(w, r, ""); err != nil {
		h.logger.Error(r.Context(), "error clearing session cookie", "error", err)
	}
	redirect(w, r, "/")
}

func (h *Handler) showPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	author, err := h.users.Get(r.Context(), post.AuthorID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", &page{Post: post, Author: author})
}

func postPage(heading, action string, f *form) *page {
	return &page{Heading: heading, Action: action, Form: f}
}

func (h *Handler) newPost(w http.ResponseWriter, r *http.Request) {
	const heading, action = "New Post", "/new-post"

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "make-post.html", postPage(heading, action, newForm(nil)))
		return
	}

	f, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	validatePost(f)
	if !f.Valid() {
		h.render(w, r, http.StatusBadRequest, "make-post.html", postPage(heading, action, f))
		return
	}

	post, err := h.posts.Create(r.Context(), currentUser(r.Context()), &models.Post{
		Title:    f.Get("title"),
		Subtitle: f.Get("subtitle"),
		Body:     f.Get("body"),
		ImgURL:   f.Get("img_url"),
	})
	if errors.Is(err, common.ErrorTitleTaken) {
		f.Errors["title"] = msgTitleTaken
		h.render(w, r, http.StatusConflict, "make-post.html", postPage(heading, action, f))
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "post created", "post_id", post.ID)
	redirect(w, r, "/")
}

func (h *Handler) editPost(w http.ResponseWriter, r *http.Request) {
	const heading = "Edit Post"

	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	action := fmt.Sprintf("/edit-post/%d", id)

	if r.Method == http.MethodGet {
		post, err := h.posts.Get(r.Context(), id)
		if err != nil {
			h.storeError(w, r, err)
			return
		}
		f := newForm(url.Values{
			"title":    {post.Title},
			"subtitle": {post.Subtitle},
			"img_url":  {post.ImgURL},
			"body":     {post.Body},
		})
		h.render(w, r, http.StatusOK, "make-post.html", postPage(heading, action, f))
		return
	}

	if _, err := h.posts.Get(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}

	f, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	validatePost(f)
	if !f.Valid() {
		h.render(w, r, http.StatusBadRequest, "make-post.html", postPage(heading, action, f))
		return
	}

	title, subtitle, body, imgURL := f.Get("title"), f.Get("subtitle"), f.Get("body"), f.Get("img_url")
	_, err := h.posts.Update(r.Context(), currentUser(r.Context()), id, models.PostUpdate{
		Title:    &title,
		Subtitle: &subtitle,
		Body:     &body,
		ImgURL:   &imgURL,
	})
	if errors.Is(err, common.ErrorTitleTaken) {
		f.Errors["title"] = msgTitleTaken
		h.render(w, r, http.StatusConflict, "make-post.html", postPage(heading, action, f))
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("/post/%d", id))
}

// deletePost removes a post. It answers GET as well as POST so the listing
// can link to it; a CSRF token would be required to make that safe.
func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	if err := h.posts.Delete(r.Context(), currentUser(r.Context()), id); err != nil {
		h.storeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "post deleted", "post_id", id)
	redirect(w, r, "/")
}
