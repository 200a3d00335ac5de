package handlers

import (
	"log"
	"net/http"
	"time"

	"todolist/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	flashCookieName = "flash"
	flashTTL        = 5 * time.Minute
)

// Result is what a page handler decides: render View with Data, or
// redirect to Redirect. Flashes travel with either.
type Result struct {
	Status   int
	View     string
	Data     gin.H
	Redirect string
	Flashes  []string
}

func render(view string, data gin.H, flashes ...string) Result {
	return Result{Status: http.StatusOK, View: view, Data: data, Flashes: flashes}
}

func redirect(to string, flashes ...string) Result {
	return Result{Redirect: to, Flashes: flashes}
}

func failure(status int, message string) Result {
	return Result{
		Status: status,
		View:   "error.html",
		Data:   gin.H{"title": http.StatusText(status), "message": message},
	}
}

func internalError(c *gin.Context, op string, err error) Result {
	log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, op, err)
	_ = c.Error(err)
	return failure(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// PageFunc handles one page request.
type PageFunc func(c *gin.Context) Result

// Responder writes Results. Flashes of a redirect are kept in a signed
// cookie and shown by the next rendered page, which then clears it.
type Responder struct {
	signer *auth.Signer
	secure bool
}

func NewResponder(signer *auth.Signer, secureCookie bool) *Responder {
	return &Responder{signer: signer, secure: secureCookie}
}

// Page adapts fn to a gin handler.
func (r *Responder) Page(fn PageFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.Write(c, fn(c))
	}
}

// Fail renders the 500 page and aborts the chain. It fits auth.ErrorFunc.
func (r *Responder) Fail(c *gin.Context, err error) {
	r.Write(c, internalError(c, "identify", err))
	c.Abort()
}

func (r *Responder) Write(c *gin.Context, res Result) {
	pending := r.pending(c)

	if res.Redirect != "" {
		// Flashes not rendered yet survive another hop.
		r.keep(c, append(pending, res.Flashes...))
		c.Redirect(http.StatusFound, res.Redirect)
		return
	}

	if len(pending) > 0 {
		r.clear(c)
	}
	data := gin.H{}
	for k, v := range res.Data {
		data[k] = v
	}
	data["flashes"] = append(pending, res.Flashes...)
	if u, ok := auth.CurrentUser(c); ok {
		data["user"] = u
	}
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	c.HTML(status, res.View, data)
}

func (r *Responder) pending(c *gin.Context) []string {
	token, err := c.Cookie(flashCookieName)
	if err != nil || token == "" {
		return nil
	}
	msgs, err := r.signer.ParseFlashes(token)
	if err != nil {
		return nil
	}
	return msgs
}

func (r *Responder) keep(c *gin.Context, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	token, err := r.signer.SignFlashes(msgs, flashTTL)
	if err != nil {
		log.Printf("flash: %v", err)
		return
	}
	r.setCookie(c, token, int(flashTTL.Seconds()))
}

func (r *Responder) clear(c *gin.Context) {
	r.setCookie(c, "", -1)
}

func (r *Responder) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, value, maxAge, "/", "", r.secure, true)
}

// hasFields reports whether every named field was posted, even if empty.
func hasFields(c *gin.Context, names []string) bool {
	for _, name := range names {
		if _, ok := c.GetPostForm(name); !ok {
			return false
		}
	}
	return true
}

func badForm() Result {
	return failure(http.StatusBadRequest, "The form was incomplete. Please go back and try again.")
}
