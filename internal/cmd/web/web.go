// Package web implements the site server command line.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/assets"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/config"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/logging"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/storage"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web"
)

// ParseConfig layers site settings and flags. A nil environ reads the
// process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (config.Settings, error) {
	settings, err := config.LoadSettingsFrom(environ)
	if err != nil {
		return config.Settings{}, err
	}

	fs.StringVar(&settings.HTTPAddr, "http-addr", settings.HTTPAddr, "HTTP listen address")
	fs.StringVar(&settings.DatabasePath, "database", settings.DatabasePath, "sqlite database path")
	fs.StringVar(&settings.AssetsDir, "assets-dir", settings.AssetsDir, "static and media assets directory")
	if err := fs.Parse(args); err != nil {
		return config.Settings{}, err
	}

	return settings, nil
}

// Run starts the site server and blocks until the context ends.
func Run(ctx context.Context, settings config.Settings) error {
	logger := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		File:   settings.LogFile,
	})

	if err := assets.Ensure(settings.AssetsDir); err != nil {
		return fmt.Errorf("prepare assets dir: %w", err)
	}

	store, err := storage.Open(settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	server, err := web.NewServer(web.Config{
		Settings: settings,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
