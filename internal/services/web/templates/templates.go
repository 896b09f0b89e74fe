// Package templates renders site pages from embedded HTML templates and
// exposes the tag helpers they use.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed html
var htmlFS embed.FS

// AdminChrome carries the admin module's branding strings.
type AdminChrome struct {
	Header     string
	Title      string
	IndexTitle string
}

// PageData is the context handed to every page template.
type PageData struct {
	Lang      string
	PageTitle string
	SignedIn  bool
	UserName  string
	// Error carries a user-facing form error, e.g. a failed login.
	Error string
	Admin *AdminChrome
}

// Renderer holds one parsed template set per page, each sharing the base
// layout and tag helpers.
type Renderer struct {
	siteName string
	pages    map[string]*template.Template
}

// New parses the embedded templates for a site.
func New(siteName string) (*Renderer, error) {
	r := &Renderer{
		siteName: strings.TrimSpace(siteName),
		pages:    make(map[string]*template.Template),
	}

	funcs := template.FuncMap{
		"site":        func() string { return r.siteName },
		"title":       r.titleTag,
		"tailwindcss": TailwindCSSTag,
		"alpinejs":    AlpineJSTag,
	}

	entries, err := fs.ReadDir(htmlFS, "html/pages")
	if err != nil {
		return nil, fmt.Errorf("read page templates: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		tmpl, err := template.New(entry.Name()).Funcs(funcs).ParseFS(
			htmlFS, "html/base.html", "html/pages/"+entry.Name(),
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", entry.Name(), err)
		}
		r.pages[entry.Name()] = tmpl
	}
	return r, nil
}

// SiteName returns the configured site name.
func (r *Renderer) SiteName() string {
	return r.siteName
}

// Page renders a named page template with its layout.
func (r *Renderer) Page(w io.Writer, name string, data PageData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	if data.Lang == "" {
		data.Lang = "en"
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		return fmt.Errorf("render page %s: %w", name, err)
	}
	return nil
}

// titleTag adapts TitleTag for template use: {{title .}} uses the page
// context, {{title . "Name"}} and {{title . "Name" " - "}} override the
// page title and separator.
func (r *Renderer) titleTag(data PageData, args ...string) template.HTML {
	name := data.PageTitle
	separator := DefaultTitleSeparator
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		separator = args[1]
	}
	return TitleTag(r.siteName, name, separator)
}
