package templates

import (
	"html/template"
	"strings"
)

// DefaultTitleSeparator sits between the page title and the site name.
const DefaultTitleSeparator = " | "

// Static asset paths emitted by the tag helpers. The Tailwind bundle is
// produced by the asset pipeline; the Alpine.js bundle is vendored into the
// static tree.
const (
	TailwindCSSPath = "/static/tailwindcss/min.css"
	AlpineJSPath    = "/static/alpinejs/cdn.min.js"
)

// TitleTag renders a complete document <title>, combining the page title
// with the site name: "Page | Site". Without a page title only the site name
// is used; with neither the element is empty.
func TitleTag(siteName, pageTitle, separator string) template.HTML {
	site := strings.TrimSpace(siteName)
	if separator == "" {
		separator = DefaultTitleSeparator
	}

	var full string
	switch {
	case pageTitle == "":
		full = site
	case site == "":
		full = pageTitle
	default:
		full = pageTitle + separator + site
	}
	return template.HTML("<title>" + template.HTMLEscapeString(full) + "</title>")
}

// StylesheetTag renders a <link rel="stylesheet"> element.
func StylesheetTag(href string) template.HTML {
	return template.HTML(`<link rel="stylesheet" href="` + template.HTMLEscapeString(href) + `">`)
}

// ScriptTag renders a deferred <script> element.
func ScriptTag(src string) template.HTML {
	return template.HTML(`<script src="` + template.HTMLEscapeString(src) + `" defer></script>`)
}

// TailwindCSSTag links the compiled Tailwind bundle.
func TailwindCSSTag() template.HTML {
	return StylesheetTag(TailwindCSSPath)
}

// AlpineJSTag loads the vendored Alpine.js bundle.
func AlpineJSTag() template.HTML {
	return ScriptTag(AlpineJSPath)
}
