// Package view renders the gateway's HTML pages. Templates are embedded so
// the binary is self-contained.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/molticket/webgate/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS exposes the embedded static assets rooted at "static".
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the envelope every template receives: the shared chrome (current
// user, pending flash) plus page-specific data. Refresh, when set, becomes a
// meta refresh directive ("5;url=/queue/7?n=1") emitted in the document head.
type Page struct {
	Title   string
	Flash   string
	Refresh string
	User    *model.User
	Data    any
}

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"money":    money,
		"fmtdate":  fmtDate,
		"seatform": seatFormLabel,
		"inc":      func(i int) int { return i + 1 },
	}
}

// money renders a decimal price with thousands separators and no fraction;
// ticket prices are whole currency units.
func money(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// fmtDate formats an upstream timestamp for display, falling back to the raw
// string when it cannot be parsed.
func fmtDate(s string) string {
	t := model.ParseAPITime(s)
	if t.IsZero() {
		return s
	}
	return t.Format("Jan 2, 2006 15:04")
}

func seatFormLabel(f model.SeatForm) string {
	switch f {
	case model.SeatAssigned:
		return "Assigned seating"
	case model.SeatFree:
		return "Free seating"
	case model.SeatStanding:
		return "Standing"
	}
	return string(f)
}
