package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// ContextSessionKey is the gin context key storing the resolved SessionState.
const ContextSessionKey = "session"

type sessionResolver interface {
	Resolve(ctx context.Context) models.SessionState
}

// Session forwards the browser's cookies to every backend call made while
// handling the request and resolves the session once before the handler runs.
func Session(resolver sessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := apiclient.WithCookies(c.Request.Context(), c.GetHeader("Cookie"))
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextSessionKey, resolver.Resolve(ctx))
		c.Next()
	}
}

// SessionFrom returns the state stored by Session. A request that never went
// through Session is signed out.
func SessionFrom(c *gin.Context) models.SessionState {
	if v, ok := c.Get(ContextSessionKey); ok {
		if state, ok := v.(models.SessionState); ok {
			return state
		}
	}
	return models.SessionState{}
}
