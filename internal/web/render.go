package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/meslamib3/storiesdb/internal/method"
)

//go:embed templates/*.html
var templateFS embed.FS

// Screens
const (
	screenList   = "list"
	screenAdd    = "add"
	screenUpdate = "update"
	screenDelete = "delete"
	screenError  = "error"
)

type menuItem struct {
	Key   string
	Label string
	Path  string
}

// menu holds the four screens offered in the side navigation.
var menu = []menuItem{
	{Key: screenList, Label: "View Methods", Path: "/methods"},
	{Key: screenAdd, Label: "Add Method", Path: "/methods/new"},
	{Key: screenUpdate, Label: "Update Method", Path: "/methods/update"},
	{Key: screenDelete, Label: "Delete Method", Path: "/methods/delete"},
}

type notice struct {
	Kind string // success, warning or error
	Text string
}

type formField struct {
	method.Field
	Value   string
	Options []string
}

func (f formField) IsSelect() bool   { return f.Kind == method.KindSelect }
func (f formField) IsTextArea() bool { return f.Kind == method.KindTextArea }

type picker struct {
	Path     string
	Label    string
	IDs      []int64
	Selected int64
}

// page is the data passed to every screen template.
type page struct {
	Active  string
	Heading string
	Menu    []menuItem
	Notice  *notice

	Headers []string
	Rows    [][]string

	Fields  []formField
	Picker  *picker
	Summary string
}

func newPage(screen, heading string) *page {
	return &page{Active: screen, Heading: heading, Menu: menu}
}

func (p *page) success(text string) *page {
	p.Notice = &notice{Kind: "success", Text: text}
	return p
}

func (p *page) warning(text string) *page {
	p.Notice = &notice{Kind: "warning", Text: text}
	return p
}

// formFields builds the inputs for m. Select options always include the current value.
func formFields(m method.Method) []formField {
	fields := make([]formField, len(method.Fields))
	for i, f := range method.Fields {
		value := m.Get(f.Column)
		fields[i] = formField{Field: f, Value: value, Options: f.OptionsWith(value)}
	}
	return fields
}

// renderer holds one parsed template set per screen.
type renderer struct {
	screens map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{screens: make(map[string]*template.Template)}
	for _, screen := range []string{screenList, screenAdd, screenUpdate, screenDelete, screenError} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+screen+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", screen, err)
		}
		r.screens[screen] = tmpl
	}
	return r, nil
}

// render executes the template for screen into a buffer first so a template
// failure never produces a half-written page.
func (r *renderer) render(w http.ResponseWriter, status int, screen string, p *page) {
	tmpl, ok := r.screens[screen]
	if !ok {
		http.Error(w, "unknown screen", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		slog.Error("Failed to render page", "screen", screen, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
