package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// clockLayout matches the vi-VN locale string staff are used to,
// e.g. "14:05:09 17/10/2026".
const clockLayout = "15:04:05 2/1/2006"

// Clock formats stored UTC timestamps in the site's time zone.
type Clock struct {
	Location *time.Location
}

func (cl Clock) Format(t time.Time) string {
	loc := cl.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(clockLayout)
}

// Assets are the presentational URLs handed to every page.
type Assets struct {
	LogoURL       string
	BackgroundURL string
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(clock Clock) (*Renderer, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"clock": clock.Format}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
