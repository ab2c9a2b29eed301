// Package view renders the server-side pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/flash"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutName = "layout"

// Static returns the embedded CSS and scripts rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the data every page template receives.
type Page struct {
	Title     string
	Path      string
	Session   models.SessionState
	Flash     *flash.Message
	CSRFField template.HTML
	Data      interface{}
}

// User returns the signed-in user or nil.
func (p Page) User() *models.SessionUser {
	if !p.Session.SignedIn() {
		return nil
	}
	return &p.Session.Data.User
}

// Renderer implements gin's HTMLRender with one template set per page, each
// combining the layout, the partials and the page body.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/pages.
func New() (*Renderer, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Linkify))

	base, err := template.New(layoutName).Funcs(funcMap(md)).ParseFS(templateFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	entries, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(entries))}
	for _, entry := range entries {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, entry); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry, err)
		}
		r.pages[strings.TrimSuffix(path.Base(entry), ".html")] = t
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data interface{}) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages["error"]
		data = Page{Title: "Something went wrong", Data: ErrorData{Code: 500, Message: "Missing page " + name}}
	}
	return render.HTML{Template: t, Name: layoutName, Data: data}
}

// Has reports whether a page named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// ErrorData is the body of the error page.
type ErrorData struct {
	Code    int
	Message string
}

func funcMap(md goldmark.Markdown) template.FuncMap {
	return template.FuncMap{
		"markdown": func(src string) template.HTML {
			var buf bytes.Buffer
			// goldmark escapes raw HTML unless WithUnsafe is set
			if err := md.Convert([]byte(src), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(src))
			}
			return template.HTML(buf.String())
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Local().Format("Mon, Jan 2, 2006")
		},
		"clock": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("15:04")
		},
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"rating": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"lower": strings.ToLower,
		"initial": func(name string) string {
			name = strings.TrimSpace(name)
			if name == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(name)[:1]))
		},
		"statusClass": func(s models.BookingStatus) string {
			return "badge badge-" + strings.ToLower(string(s))
		},
		"contains": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"seq": func(from, to int) []int {
			var out []int
			for i := from; i <= to; i++ {
				out = append(out, i)
			}
			return out
		},
		"weekday": func(d int) string {
			if d < 0 || d > 6 {
				return ""
			}
			return models.Weekdays[d]
		},
	}
}
