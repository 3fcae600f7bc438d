// Package web holds the embedded HTML templates and the view model helpers
// shared by the page handlers.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lifetrail/internal/platform/flash"
	jwtmw "lifetrail/internal/platform/jwt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page template. Times are rendered in loc.
func Templates(loc *time.Location) (*template.Template, error) {
	if loc == nil {
		loc = time.Local
	}
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("2006-01-02 15:04")
		},
		"date": func(t time.Time) string {
			return t.In(loc).Format("2006-01-02")
		},
		"coord": func(v *float64) string {
			if v == nil {
				return ""
			}
			s := strconv.FormatFloat(*v, 'f', 6, 64)
			return strings.TrimRight(strings.TrimRight(s, "0"), ".")
		},
		"media": func(key string) string {
			if key == "" {
				return ""
			}
			return "/media/" + key
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// View builds the data passed to a page template: the active nav entry,
// pending flash messages and whether a user is signed in, plus data.
func View(c *gin.Context, page string, flashes []flash.Message, data gin.H) gin.H {
	out := gin.H{
		"Page":          page,
		"Flashes":       flashes,
		"Authenticated": jwtmw.UserID(c) != 0,
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", View(c, "", nil, nil))
	c.Abort()
}

// ServerError renders the 500 page.
func ServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", View(c, "", nil, nil))
	c.Abort()
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
