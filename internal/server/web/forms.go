package web

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophblog/internal/server/auth"
)

// form wraps submitted values and collects per-field validation errors.
type form struct {
	url.Values
	Errors map[string]string
}

func newForm(data url.Values) *form {
	if data == nil {
		data = url.Values{}
	}
	return &form{Values: data, Errors: map[string]string{}}
}

// Get returns the trimmed value of field.
func (f *form) Get(field string) string {
	return strings.TrimSpace(f.Values.Get(field))
}

// Raw returns field untouched. Passwords are never trimmed.
func (f *form) Raw(field string) string {
	return f.Values.Get(field)
}

func (f *form) Error(field string) string {
	return f.Errors[field]
}

func (f *form) fail(field, msg string) {
	if _, ok := f.Errors[field]; !ok {
		f.Errors[field] = msg
	}
}

func (f *form) Required(fields ...string) {
	for _, field := range fields {
		if f.Get(field) == "" {
			f.fail(field, "This field is required.")
		}
	}
}

func (f *form) MaxLength(field string, n int) {
	if utf8.RuneCountInString(f.Get(field)) > n {
		f.fail(field, fmt.Sprintf("Field cannot be longer than %d characters.", n))
	}
}

// MaxBytes limits the untrimmed value of field to n bytes.
func (f *form) MaxBytes(field string, n int) {
	if len(f.Raw(field)) > n {
		f.fail(field, fmt.Sprintf("Field cannot be longer than %d bytes.", n))
	}
}

func (f *form) Email(field string) {
	v := f.Get(field)
	if v == "" {
		return
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		f.fail(field, "Invalid email address.")
	}
}

func (f *form) URL(field string) {
	v := f.Get(field)
	if v == "" {
		return
	}
	u, err := url.ParseRequestURI(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		f.fail(field, "Invalid URL.")
	}
}

func (f *form) Valid() bool {
	return len(f.Errors) == 0
}

func validateRegister(f *form) {
	f.Required("email", "password", "name")
	f.Email("email")
	f.MaxLength("email", 100)
	f.MaxLength("name", 100)
	f.MaxBytes("password", auth.MaxPasswordBytes)
}

func validateLogin(f *form) {
	f.Required("email", "password")
	f.Email("email")
	f.MaxBytes("password", auth.MaxPasswordBytes)
}

func validatePost(f *form) {
	f.Required("title", "subtitle", "img_url", "body")
	f.MaxLength("title", 250)
	f.MaxLength("subtitle", 250)
	f.MaxLength("img_url", 250)
	f.URL("img_url")
}
