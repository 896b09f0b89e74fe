// Package composition mounts installed feature modules onto the site mux.
package composition

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sparkplayhouse/playhouse.site/internal/services/web/module"
)

// Compose mounts every available module whose id is in the installed set
// under its URL prefix. Modules not in the set are skipped silently, so a
// deployment chooses its feature surface through configuration alone.
func Compose(mux *http.ServeMux, installed []string, available []module.Module) error {
	set := make(map[string]bool, len(installed))
	for _, id := range installed {
		set[strings.ToLower(strings.TrimSpace(id))] = true
	}

	for _, m := range available {
		if !set[strings.ToLower(m.ID())] {
			continue
		}
		mount, err := m.Mount()
		if err != nil {
			return fmt.Errorf("mount module %s: %w", m.ID(), err)
		}
		prefix := mount.Prefix
		if prefix == "" {
			prefix = "/" + m.ID() + "/"
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		mux.Handle(prefix, http.StripPrefix(strings.TrimSuffix(prefix, "/"), mount.Handler))
	}
	return nil
}
