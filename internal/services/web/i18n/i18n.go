// Package i18n resolves the page language for each request.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// CookieName stores the visitor's explicit language choice.
const CookieName = "playhouse_lang"

// QueryParam switches the language for the current visit and persists
// the choice in the language cookie.
const QueryParam = "lang"

// Resolver picks the best supported language for a request.
type Resolver struct {
	matcher  language.Matcher
	tags     []language.Tag
	fallback string
}

// NewResolver builds a resolver over the supported language codes. The
// first code is the fallback when nothing in the request matches.
func NewResolver(supported []string) *Resolver {
	if len(supported) == 0 {
		supported = []string{"en"}
	}
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}
	return &Resolver{
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		fallback: tags[0].String(),
	}
}

// Resolve returns the language code for the request, checking the lang
// query parameter, then the language cookie, then Accept-Language. When
// the query parameter names a supported language the choice is persisted
// as a cookie on w.
func (res *Resolver) Resolve(w http.ResponseWriter, r *http.Request) string {
	if code, ok := res.match(r.URL.Query().Get(QueryParam)); ok {
		if w != nil {
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    code,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				SameSite: http.SameSiteLaxMode,
			})
		}
		return code
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		if code, ok := res.match(cookie.Value); ok {
			return code
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if desired, _, err := language.ParseAcceptLanguage(accept); err == nil {
			if _, index, conf := res.matcher.Match(desired...); conf > language.No {
				return res.tags[index].String()
			}
		}
	}

	return res.fallback
}

func (res *Resolver) match(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	desired, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	if _, index, conf := res.matcher.Match(desired); conf > language.No {
		return res.tags[index].String(), true
	}
	return "", false
}
