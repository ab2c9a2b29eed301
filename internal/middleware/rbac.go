package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/flash"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

var deniedMessages = map[models.UserRole]string{
	models.RoleAdmin: "Access denied. Admin privileges required.",
	models.RoleTutor: "Access denied. Tutor account required.",
}

// RequireSignedIn redirects visitors without a session to the login page.
func RequireSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFrom(c).SignedIn() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets through only sessions holding role. Other signed-in users
// are sent to their dashboard with an error flash before anything renders.
// These checks only shape navigation; the backend authorises every call.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	message, ok := deniedMessages[role]
	if !ok {
		message = "Access denied."
	}
	return func(c *gin.Context) {
		state := SessionFrom(c)
		if !state.SignedIn() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		if !state.HasRole(role) {
			SetFlash(c, flash.Error, message)
			c.Redirect(http.StatusSeeOther, dashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
