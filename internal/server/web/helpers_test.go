package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testApp struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, rm, err := repomanager.Open(repomanager.DriverSQLite, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	h, err := NewHandler(
		logging.Nop{},
		services.NewUserService(db, rm),
		services.NewSessionService(db, rm, time.Hour),
		services.NewPostService(db, rm),
		NewCookieStore(testSecret, time.Hour, false),
		testSecret,
		time.Hour,
	)
	require.NoError(t, err)

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	return &testApp{t: t, srv: srv}
}

// client returns a browser-like client with its own cookie jar that does
// not follow redirects.
func (a *testApp) client() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type result struct {
	Status   int
	Location string
	Body     string
	Header   http.Header
}

func (a *testApp) do(c *http.Client, req *http.Request) result {
	a.t.Helper()
	resp, err := c.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return result{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Body: string(b), Header: resp.Header}
}

func (a *testApp) get(c *http.Client, path string) result {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.srv.URL+path, nil)
	require.NoError(a.t, err)
	return a.do(c, req)
}

func (a *testApp) post(c *http.Client, path string, vals url.Values) result {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.srv.URL+path, strings.NewReader(vals.Encode()))
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(c, req)
}

func (a *testApp) register(c *http.Client, email, name, password string) result {
	a.t.Helper()
	return a.post(c, "/register", url.Values{"email": {email}, "name": {name}, "password": {password}})
}

func (a *testApp) login(c *http.Client, email, password string) result {
	a.t.Helper()
	return a.post(c, "/login", url.Values{"email": {email}, "password": {password}})
}

func postValues(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"About " + title},
		"img_url":  {"https://example.com/" + title + ".png"},
		"body":     {"<p>Body of " + title + "</p>"},
	}
}
