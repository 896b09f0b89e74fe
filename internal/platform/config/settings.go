package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/branding"
)

// Profile selects the settings variant a process runs under.
type Profile string

const (
	// ProfileDevelopment enables relaxed validation and the built-in secret key.
	ProfileDevelopment Profile = "development"
	// ProfileProduction requires operator-provided secrets and host allowlists.
	ProfileProduction Profile = "production"
)

// devSecretKey is the throwaway key development runs ship with. Production
// settings refuse to start with it.
const devSecretKey = "insecure-dev-only-secret-key"

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (p *Profile) UnmarshalText(text []byte) error {
	switch v := Profile(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case "":
		*p = ProfileDevelopment
	case ProfileDevelopment, ProfileProduction:
		*p = v
	default:
		return fmt.Errorf("unknown profile %q", string(text))
	}
	return nil
}

// Settings is the assembled site configuration. Values layer in order:
// built-in defaults, then PLAYHOUSE_* environment variables, then any
// command-line flags a binary chooses to expose.
type Settings struct {
	SiteName     string   `env:"PLAYHOUSE_SITE_NAME"`
	Profile      Profile  `env:"PLAYHOUSE_PROFILE"`
	SecretKey    string   `env:"PLAYHOUSE_SECRET_KEY"`
	AllowedHosts []string `env:"PLAYHOUSE_ALLOWED_HOSTS"`
	LanguageCode string   `env:"PLAYHOUSE_LANGUAGE_CODE"`
	Languages    []string `env:"PLAYHOUSE_LANGUAGES"`
	HTTPAddr     string   `env:"PLAYHOUSE_HTTP_ADDR"`
	AssetsDir    string   `env:"PLAYHOUSE_ASSETS_DIR"`
	DatabasePath string   `env:"PLAYHOUSE_DATABASE_PATH"`

	// Modules lists the optional feature modules mounted by the web service.
	Modules []string `env:"PLAYHOUSE_MODULES"`

	// TailwindEntryCSS is the stylesheet fed to the Tailwind compiler. It has
	// no default: the asset pipeline refuses to run until it is configured.
	TailwindEntryCSS  string `env:"PLAYHOUSE_TAILWIND_ENTRY_CSS"`
	TailwindBuildDir  string `env:"PLAYHOUSE_TAILWIND_BUILD_DIR"`
	TailwindOutputCSS string `env:"PLAYHOUSE_TAILWIND_OUTPUT_CSS"`

	LogLevel  string `env:"PLAYHOUSE_LOG_LEVEL"`
	LogFormat string `env:"PLAYHOUSE_LOG_FORMAT"`
	LogFile   string `env:"PLAYHOUSE_LOG_FILE"`
}

// DefaultSettings returns the development baseline.
func DefaultSettings() Settings {
	return Settings{
		SiteName:         branding.SiteName,
		Profile:          ProfileDevelopment,
		SecretKey:        devSecretKey,
		LanguageCode:     "en-US",
		Languages:        []string{"en-US", "pt-BR"},
		HTTPAddr:         "localhost:8000",
		AssetsDir:        "assets",
		DatabasePath:     "db.sqlite3",
		Modules:          []string{"auth", "admin"},
		TailwindBuildDir: "build",
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// LoadSettings assembles Settings from defaults and the process environment.
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(nil)
}

// LoadSettingsFrom assembles Settings from defaults and the supplied variable
// map. A nil map reads the process environment.
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	settings := DefaultSettings()
	var err error
	if environ == nil {
		err = ParseEnv(&settings)
	} else {
		err = ParseEnvFrom(&settings, environ)
	}
	if err != nil {
		return Settings{}, err
	}
	if strings.TrimSpace(settings.TailwindOutputCSS) == "" {
		settings.TailwindOutputCSS = filepath.Join(settings.StaticRoot(), "tailwindcss", "min.css")
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate enforces the production checklist.
func (s Settings) Validate() error {
	if s.Profile != ProfileProduction {
		return nil
	}
	if strings.TrimSpace(s.SecretKey) == "" || s.SecretKey == devSecretKey {
		return fmt.Errorf("PLAYHOUSE_SECRET_KEY must be set to a real secret in production")
	}
	if len(s.AllowedHosts) == 0 {
		return fmt.Errorf("PLAYHOUSE_ALLOWED_HOSTS must be set in production")
	}
	return nil
}

// StaticRoot is where compiled and collected static files live on disk.
func (s Settings) StaticRoot() string {
	return filepath.Join(s.AssetsDir, "static")
}

// MediaRoot is where user-uploaded files live on disk.
func (s Settings) MediaRoot() string {
	return filepath.Join(s.AssetsDir, "media")
}

// SupportedLanguages returns the language codes the site serves, with the
// default LanguageCode first.
func (s Settings) SupportedLanguages() []string {
	langs := make([]string, 0, len(s.Languages)+1)
	seen := make(map[string]bool)
	for _, code := range append([]string{s.LanguageCode}, s.Languages...) {
		code = strings.TrimSpace(code)
		if code == "" || seen[strings.ToLower(code)] {
			continue
		}
		seen[strings.ToLower(code)] = true
		langs = append(langs, code)
	}
	return langs
}

// ModuleInstalled reports whether a feature module is in the installed set.
func (s Settings) ModuleInstalled(id string) bool {
	for _, m := range s.Modules {
		if strings.EqualFold(strings.TrimSpace(m), id) {
			return true
		}
	}
	return false
}
