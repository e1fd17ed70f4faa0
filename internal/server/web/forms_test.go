package web

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForm_Validators(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		validate func(*form)
		errors   map[string]string
	}{
		{
			name:     "register ok",
			values:   url.Values{"email": {" a@example.com "}, "name": {"alice"}, "password": {" pw "}},
			validate: validateRegister,
			errors:   map[string]string{},
		},
		{
			name:     "register missing and invalid",
			values:   url.Values{"email": {"Alice <a@example.com>"}},
			validate: validateRegister,
			errors: map[string]string{
				"email":    "Invalid email address.",
				"name":     "This field is required.",
				"password": "This field is required.",
			},
		},
		{
			name:     "register password over bcrypt limit",
			values:   url.Values{"email": {"a@example.com"}, "name": {"alice"}, "password": {strings.Repeat("p", 73)}},
			validate: validateRegister,
			errors:   map[string]string{"password": "Field cannot be longer than 72 bytes."},
		},
		{
			name:     "login requires both",
			values:   url.Values{},
			validate: validateLogin,
			errors: map[string]string{
				"email":    "This field is required.",
				"password": "This field is required.",
			},
		},
		{
			name: "post too long and bad url",
			values: url.Values{
				"title": {strings.Repeat("t", 251)}, "subtitle": {"s"},
				"img_url": {"ftp://example.com/x.png"}, "body": {"b"},
			},
			validate: validatePost,
			errors: map[string]string{
				"title":   "Field cannot be longer than 250 characters.",
				"img_url": "Invalid URL.",
			},
		},
		{
			name: "post ok",
			values: url.Values{
				"title": {"t"}, "subtitle": {"s"}, "img_url": {"https://example.com/x.png"}, "body": {"<p>b</p>"},
			},
			validate: validatePost,
			errors:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newForm(tt.values)
			tt.validate(f)
			assert.Equal(t, tt.errors, f.Errors)
			assert.Equal(t, len(tt.errors) == 0, f.Valid())
		})
	}
}

func TestForm_GetTrimsRawDoesNot(t *testing.T) {
	f := newForm(url.Values{"password": {" secret "}})
	assert.Equal(t, "secret", f.Get("password"))
	assert.Equal(t, " secret ", f.Raw("password"))
	assert.Equal(t, "", newForm(nil).Get("missing"))
}
