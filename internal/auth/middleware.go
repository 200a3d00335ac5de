package auth

import (
	"context"
	"net/http"

	dom "todolist/internal/domain"

	"github.com/gin-gonic/gin"
)

const contextKeyUser = "current_user"

// Loader resolves a session's user id to the full record.
// found is false when the user no longer exists.
type Loader func(ctx context.Context, id int64) (u dom.User, found bool, err error)

// CurrentUser returns the user set by Identify, if any.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// ErrorFunc writes the response when identity lookup fails. It must
// abort the chain.
type ErrorFunc func(c *gin.Context, err error)

// Identify resolves the session cookie through load on every request and
// stores the result for CurrentUser. Anonymous requests pass through.
// Lookup failures go to onError; nil means a JSON 500.
func Identify(sessions *Sessions, load Loader, onError ErrorFunc) gin.HandlerFunc {
	if onError == nil {
		onError = abortJSON
	}
	return func(c *gin.Context) {
		id, ok, err := sessions.UserID(c)
		if err != nil {
			onError(c, err)
			return
		}
		if ok {
			u, found, err := load(c.Request.Context(), id)
			if err != nil {
				onError(c, err)
				return
			}
			if found {
				c.Set(contextKeyUser, u)
			}
		}
		c.Next()
	}
}

func abortJSON(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity lookup failed"})
}

// RequireUser responds with 401 unless Identify found a user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Next()
	}
}
