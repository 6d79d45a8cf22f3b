// Package view renders the dashboard page from panel state and readings.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"blanket_warmer/internal/models"
	"blanket_warmer/internal/widget"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticPrefix is the URL path the embedded assets are served under.
const StaticPrefix = "/static/"

// Page is everything one render of the dashboard needs.
type Page struct {
	Title    string
	Panel    models.PanelState
	Gauges   []models.GaugeView
	ChartURL string // empty hides the chart
	Live     bool   // connect the websocket; off for static snapshots
}

// Renderer holds the parsed templates and the asset filesystem.
type Renderer struct {
	tmpl   *template.Template
	static fs.FS
}

func New() (*Renderer, error) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r := &Renderer{static: static}

	tmpl, err := template.New("page.html").Funcs(r.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the full page.
func (r *Renderer) Render(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "page.html", p)
}

// Static is the embedded asset tree rooted at StaticPrefix.
func (r *Renderer) Static() fs.FS { return r.static }

// IconAvailable reports whether a thumb icon can be shown. Local asset paths
// are checked against the embedded tree; anything else is taken on trust.
func (r *Renderer) IconAvailable(path string) bool {
	if path == "" {
		return false
	}
	rest, ok := strings.CutPrefix(path, StaticPrefix)
	if !ok {
		return true
	}
	_, err := fs.Stat(r.static, rest)
	return err == nil
}

// MissingIcons lists configured slider icons that would render the fallback marker.
func (r *Renderer) MissingIcons(sliders ...models.SliderView) []string {
	var out []string
	for _, s := range sliders {
		if !r.IconAvailable(s.Icon) {
			out = append(out, s.Name+":"+s.Icon)
		}
	}
	return out
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"num":   widget.FormatValue,
		"coord": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		// slider tracks and thumbs come from trusted configuration
		"track": func(s models.SliderView) template.CSS {
			return template.CSS("background: " + s.Track)
		},
		"thumb": func(s models.SliderView) template.CSS {
			if !r.IconAvailable(s.Icon) {
				return ""
			}
			return template.CSS(fmt.Sprintf("--thumb: url(%q)", s.Icon))
		},
		"iconOK":    r.IconAvailable,
		"arc":       func() string { return widget.GaugeArcPath },
		"viewBox":   func() string { return widget.GaugeViewBox },
		"stops":     func() []widget.GradientStop { return widget.GaugeTrackStops },
		"gaugeCX":   func() float64 { return widget.GaugeCenterX },
		"gaugeCY":   func() float64 { return widget.GaugeCenterY },
		"powerText": powerText,
	}
}

func powerText(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
