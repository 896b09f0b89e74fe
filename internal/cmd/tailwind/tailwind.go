// Package tailwind implements the asset pipeline command line.
package tailwind

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/config"
	"github.com/sparkplayhouse/playhouse.site/internal/tailwind"
)

// Usage describes the subcommand surface.
const Usage = `Manage the Tailwind CSS toolchain.

Subcommands:
  install [-force]  Install node dependencies (requires npm); -force removes
                    node_modules first
  build             Compile the minified production bundle
  watch             Recompile on change until interrupted (alias: dev)
  status            Report toolchain and configuration status

Flags (also PLAYHOUSE_TAILWIND_* environment variables):
  -entry      entry stylesheet fed to the compiler
  -build-dir  directory holding package.json, where npm runs
  -output     compiled bundle path`

// Config holds the tailwind command configuration.
type Config struct {
	EntryCSS  string
	BuildDir  string
	OutputCSS string
}

// ParseConfig layers site settings and flags, returning the remaining
// positional arguments (the subcommand and its flags). A nil environ reads
// the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, []string, error) {
	settings, err := config.LoadSettingsFrom(environ)
	if err != nil {
		return Config{}, nil, err
	}

	cfg := Config{
		EntryCSS:  settings.TailwindEntryCSS,
		BuildDir:  settings.TailwindBuildDir,
		OutputCSS: settings.TailwindOutputCSS,
	}
	fs.StringVar(&cfg.EntryCSS, "entry", cfg.EntryCSS, "entry stylesheet fed to the compiler")
	fs.StringVar(&cfg.BuildDir, "build-dir", cfg.BuildDir, "directory holding package.json")
	fs.StringVar(&cfg.OutputCSS, "output", cfg.OutputCSS, "compiled bundle path")
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	return cfg, fs.Args(), nil
}

// Run dispatches a subcommand against the asset pipeline.
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing subcommand\n\n" + Usage)
	}

	pipeline := tailwind.New(tailwind.Config{
		EntryCSS:  cfg.EntryCSS,
		BuildDir:  cfg.BuildDir,
		OutputCSS: cfg.OutputCSS,
	}, out)

	switch args[0] {
	case "install":
		fs := flag.NewFlagSet("install", flag.ContinueOnError)
		fs.SetOutput(out)
		force := fs.Bool("force", false, "remove node_modules before installing")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return pipeline.Install(ctx, *force)
	case "build":
		return pipeline.Build(ctx)
	case "watch", "dev":
		return pipeline.Watch(ctx)
	case "status":
		pipeline.Status(ctx)
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q\n\n%s", args[0], Usage)
	}
}
