package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todolist/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponderEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl := template.Must(template.New("page.html").Parse(`{{range .flashes}}[{{.}}]{{end}}`))
	template.Must(tmpl.New("error.html").Parse(`{{.message}}`))
	r.SetHTMLTemplate(tmpl)

	respond := NewResponder(auth.NewSigner("responder-test-secret"), false)
	r.GET("/go", respond.Page(func(*gin.Context) Result { return redirect("/show", "first") }))
	r.GET("/hop", respond.Page(func(*gin.Context) Result { return redirect("/show", "second") }))
	r.GET("/show", respond.Page(func(*gin.Context) Result { return render("page.html", nil, "inline") }))
	r.POST("/form", respond.Page(func(c *gin.Context) Result {
		if !hasFields(c, []string{"a", "b"}) {
			return badForm()
		}
		return render("page.html", nil)
	}))
	return r
}

func serve(r *gin.Engine, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", flashCookieName)
	return nil
}

func TestResponderCarriesFlashesAcrossRedirects(t *testing.T) {
	r := newResponderEngine(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/go", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/show", w.Header().Get("Location"))
	first := flashCookie(t, w)

	// Unrendered flashes are kept on a second redirect.
	w = serve(r, httptest.NewRequest(http.MethodGet, "/hop", nil), first)
	both := flashCookie(t, w)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/show", nil), both)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[first][second][inline]", w.Body.String())
	assert.Equal(t, -1, flashCookie(t, w).MaxAge, "cleared after rendering")
}

func TestResponderIgnoresForgedFlashes(t *testing.T) {
	r := newResponderEngine(t)
	forged := &http.Cookie{Name: flashCookieName, Value: "not-a-token"}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/show", nil), forged)
	assert.Equal(t, "[inline]", w.Body.String())

	other := NewResponder(auth.NewSigner("some-other-secret-value"), false)
	token, err := other.signer.SignFlashes([]string{"evil"}, flashTTL)
	require.NoError(t, err)
	w = serve(r, httptest.NewRequest(http.MethodGet, "/show", nil), &http.Cookie{Name: flashCookieName, Value: token})
	assert.Equal(t, "[inline]", w.Body.String())
}

func TestHasFields(t *testing.T) {
	r := newResponderEngine(t)
	post := func(form url.Values) int {
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, post(url.Values{"a": {""}, "b": {""}}), "empty values count as present")
	assert.Equal(t, http.StatusBadRequest, post(url.Values{"a": {"x"}}))
}
