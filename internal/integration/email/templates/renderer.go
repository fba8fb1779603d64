// Package templates renders the bodies of outgoing e-mails.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var files embed.FS

// Content is one rendered e-mail body in both formats.
type Content struct {
	HTML string
	Text string
}

// Renderer executes the embedded templates. Every template name must exist
// as both <name>.html and <name>.txt.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates once.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(files, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	for _, tmpl := range html.Templates() {
		base := strings.TrimSuffix(tmpl.Name(), ".html")
		if text.Lookup(base+".txt") == nil {
			return nil, fmt.Errorf("template %s has no plain text variant", tmpl.Name())
		}
	}

	return &Renderer{html: html, text: text}, nil
}

// Render fills the named template with data.
func (r *Renderer) Render(name string, data any) (Content, error) {
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Content{}, fmt.Errorf("render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Content{}, fmt.Errorf("render %s.txt: %w", name, err)
	}
	return Content{HTML: html.String(), Text: text.String()}, nil
}

// BudgetExceeded feeds budget_exceeded. Amounts are preformatted with two decimals.
type BudgetExceeded struct {
	UserName string
	Category string
	Limit    string
	Spent    string
	Over     string
}
