package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/noah-isme/skillbridge-web/internal/middleware"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/view"
	appErrors "github.com/noah-isme/skillbridge-web/pkg/errors"
	"github.com/noah-isme/skillbridge-web/pkg/flash"
	"github.com/noah-isme/skillbridge-web/pkg/proxy"
)

func render(c *gin.Context, status int, name, title string, data interface{}) {
	c.HTML(status, name, view.Page{
		Title:     title,
		Path:      c.Request.URL.Path,
		Session:   middleware.SessionFrom(c),
		Flash:     middleware.PopFlash(c),
		CSRFField: csrf.TemplateField(c.Request),
		Data:      data,
	})
}

func renderError(c *gin.Context, status int, message string) {
	title := "Something went wrong"
	if status == http.StatusNotFound {
		title = "Page not found"
	}
	render(c, status, "error", title, view.ErrorData{Code: status, Message: message})
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func success(c *gin.Context, text string) {
	middleware.SetFlash(c, flash.Success, text)
}

// failure flashes the user-facing text of err for the next page and records
// err on the context for the request log.
func failure(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	middleware.SetFlash(c, flash.Error, appErrors.Message(err, fallback))
}

// failureNow is failure for a page re-rendered by this request.
func failureNow(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	middleware.FlashNow(c, flash.Error, appErrors.Message(err, fallback))
}

func currentRole(c *gin.Context) models.UserRole {
	return middleware.SessionFrom(c).Role()
}

// relayCookies copies auth provider cookies to the browser using the same
// rewrite as the auth proxy.
func relayCookies(c *gin.Context, cookies []string) {
	for _, v := range proxy.RewriteSetCookies(cookies) {
		c.Writer.Header().Add("Set-Cookie", v)
	}
}

// returnTo picks a same-site path posted in the "return" field, or fallback.
func returnTo(c *gin.Context, fallback string) string {
	target := c.PostForm("return")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}
