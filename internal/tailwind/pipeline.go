// Package tailwind drives the external Tailwind CSS toolchain (npm and the
// @tailwindcss/cli compiler) to produce the site's stylesheet bundle.
//
// Every operation validates its configuration before it spawns anything, and
// failures surface as single operator-facing errors with a remediation hint.
// There are no retries: the operator reruns the command.
package tailwind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// cliPackage is the npm package exposing the Tailwind compiler binary.
const cliPackage = "@tailwindcss/cli"

// stagedEntryName is the filename the entry stylesheet is staged under
// inside the build dir, next to package.json and node_modules.
const stagedEntryName = "tailwind.css"

// Config locates the pipeline inputs and outputs on disk.
type Config struct {
	// EntryCSS is the source stylesheet fed to the compiler.
	EntryCSS string
	// BuildDir is where package.json lives and npm commands run.
	BuildDir string
	// OutputCSS is the compiled bundle path.
	OutputCSS string
}

// Pipeline orchestrates install, build, watch and status operations.
type Pipeline struct {
	cfg  Config
	out  io.Writer
	look func(string) (string, error)
	run  runner
}

// New builds a Pipeline writing progress to out.
func New(cfg Config, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{
		cfg:  cfg,
		out:  out,
		look: exec.LookPath,
		run:  execRunner{},
	}
}

// Install fetches the node dependencies into the build dir. With force, an
// existing node_modules is removed first.
func (p *Pipeline) Install(ctx context.Context, force bool) error {
	npm, err := p.checkTool(ctx, "npm")
	if err != nil {
		return err
	}

	if force {
		modules := filepath.Join(p.cfg.BuildDir, "node_modules")
		_, statErr := os.Stat(modules)
		switch {
		case statErr == nil:
			fmt.Fprintln(p.out, "Removing existing node_modules...")
			if err := os.RemoveAll(modules); err != nil {
				return fmt.Errorf("remove node_modules: %w", err)
			}
		case !errors.Is(statErr, fs.ErrNotExist):
			return fmt.Errorf("stat node_modules: %w", statErr)
		}
	}

	fmt.Fprintln(p.out, "Installing tailwind dependencies...")
	res, err := p.run.Run(ctx, p.cfg.BuildDir, npm, "install")
	if err != nil {
		fmt.Fprintln(p.out, "✗ tailwind install failed")
		if res.Stderr != "" {
			fmt.Fprintln(p.out, res.Stderr)
		}
		return fmt.Errorf("tailwind install failed: %w", err)
	}

	fmt.Fprintln(p.out, "✓ tailwind install completed")
	if res.Stdout != "" {
		fmt.Fprintln(p.out, res.Stdout)
	}
	return nil
}

// Build compiles the minified production bundle.
func (p *Pipeline) Build(ctx context.Context) error {
	staged, npx, output, err := p.prepare(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, "Building Tailwind CSS for production...")
	res, err := p.run.Run(ctx, p.cfg.BuildDir, npx,
		cliPackage, "-i", filepath.Base(staged), "-o", output, "--minify",
	)
	if err != nil {
		fmt.Fprintln(p.out, "✗ Build failed")
		if res.Stderr != "" {
			fmt.Fprintln(p.out, res.Stderr)
		}
		return fmt.Errorf("tailwind build failed: %w", err)
	}

	fmt.Fprintln(p.out, "✓ Tailwind CSS build completed")
	if info, err := os.Stat(output); err == nil {
		fmt.Fprintf(p.out, "Output file: %s (%.2f KB)\n", output, float64(info.Size())/1024)
	}
	if res.Stdout != "" {
		fmt.Fprintln(p.out, res.Stdout)
	}
	return nil
}

// Watch runs the compiler in watch mode until the context is canceled.
func (p *Pipeline) Watch(ctx context.Context) error {
	staged, npx, output, err := p.prepare(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, "Watching for changes (interrupt to stop)...")
	err = p.run.Stream(ctx, p.cfg.BuildDir, p.out, p.out, npx,
		cliPackage, "-i", filepath.Base(staged), "-o", output, "--watch",
	)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("tailwind watch failed: %w", err)
	}
	return nil
}

// Status reports tool availability, configuration validity and output file
// presence. It is best-effort and never fails.
func (p *Pipeline) Status(ctx context.Context) {
	fmt.Fprintln(p.out, "Tailwind CSS setup status")
	fmt.Fprintln(p.out, strings.Repeat("-", 50))

	for _, tool := range []string{"npm", "npx"} {
		p.reportTool(ctx, tool)
	}

	if _, err := p.validateEntry(); err != nil {
		fmt.Fprintln(p.out, "✗ entry CSS issue:")
		fmt.Fprintf(p.out, "  %v\n", err)
		return
	}

	if info, err := os.Stat(p.cfg.OutputCSS); err == nil {
		fmt.Fprintf(p.out, "✓ Output CSS: %s (%.2f KB)\n", p.cfg.OutputCSS, float64(info.Size())/1024)
	} else {
		fmt.Fprintln(p.out, "⚠ Output CSS not found (run: tailwind build)")
	}
}

// prepare runs the shared build/watch preconditions in order: entry
// validation, compiler lookup, dependency install, entry staging. The
// returned output path is absolute: the compiler runs with the build dir as
// its working directory, so a relative configured path would be resolved
// against the wrong base.
func (p *Pipeline) prepare(ctx context.Context) (staged, npx, output string, err error) {
	entry, err := p.validateEntry()
	if err != nil {
		return "", "", "", err
	}
	fmt.Fprintf(p.out, "✓ Using entry: %s\n", entry)

	npx, err = p.checkTool(ctx, "npx")
	if err != nil {
		return "", "", "", err
	}
	if err := p.ensureNodeModules(ctx); err != nil {
		return "", "", "", err
	}
	staged, err = p.stageEntry(entry)
	if err != nil {
		return "", "", "", err
	}
	output, err = filepath.Abs(p.cfg.OutputCSS)
	if err != nil {
		return "", "", "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", "", "", fmt.Errorf("create output dir: %w", err)
	}
	return staged, npx, output, nil
}

// validateEntry checks the configured entry stylesheet without touching any
// subprocess. It runs before anything is spawned.
func (p *Pipeline) validateEntry() (string, error) {
	entry := strings.TrimSpace(p.cfg.EntryCSS)
	if entry == "" {
		return "", errors.New(
			"tailwind entry CSS is not configured\n" +
				"Set PLAYHOUSE_TAILWIND_ENTRY_CSS (or -entry) to the stylesheet fed to the compiler,\n" +
				"for example: conf/tailwind.css",
		)
	}

	info, err := os.Stat(entry)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf(
			"tailwind entry CSS not found: %s\nEnsure the file exists or update PLAYHOUSE_TAILWIND_ENTRY_CSS",
			entry,
		)
	}
	if err != nil {
		return "", fmt.Errorf("stat tailwind entry CSS: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("tailwind entry CSS must point to a file, not a directory: %s", entry)
	}
	return entry, nil
}

// checkTool locates a node toolchain binary on PATH and verifies it runs.
func (p *Pipeline) checkTool(ctx context.Context, name string) (string, error) {
	path, err := p.look(name)
	if err != nil {
		return "", fmt.Errorf(
			"%s not found in PATH (OS: %s)\nInstall Node.js from https://nodejs.org/ and restart your shell",
			name, runtime.GOOS,
		)
	}
	if _, err := p.run.Run(ctx, "", path, "--version"); err != nil {
		return "", fmt.Errorf("%s found at %s but failed to execute: %w", name, path, err)
	}
	return path, nil
}

// reportTool is the non-failing status variant of checkTool.
func (p *Pipeline) reportTool(ctx context.Context, name string) {
	path, err := p.look(name)
	if err != nil {
		fmt.Fprintf(p.out, "✗ %s not found in PATH (OS: %s)\n", name, runtime.GOOS)
		return
	}
	res, err := p.run.Run(ctx, "", path, "--version")
	if err != nil {
		fmt.Fprintf(p.out, "⚠ %s found at %s but failed to execute\n", name, path)
		return
	}
	fmt.Fprintf(p.out, "✓ %s version: %s (at %s)\n", name, strings.TrimSpace(res.Stdout), path)
}

// ensureNodeModules installs dependencies when the cache dir is missing.
func (p *Pipeline) ensureNodeModules(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(p.cfg.BuildDir, "node_modules")); err == nil {
		return nil
	}
	return p.Install(ctx, false)
}

// stageEntry copies the entry stylesheet into the build dir so the compiler
// resolves node_modules imports relative to it. A copy is skipped when the
// entry already is the staged file.
func (p *Pipeline) stageEntry(entry string) (string, error) {
	if err := os.MkdirAll(p.cfg.BuildDir, 0o755); err != nil {
		return "", fmt.Errorf("create build dir: %w", err)
	}

	dest := filepath.Join(p.cfg.BuildDir, stagedEntryName)
	srcAbs, err := filepath.Abs(entry)
	if err != nil {
		return "", fmt.Errorf("resolve entry path: %w", err)
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("resolve staged path: %w", err)
	}
	if srcAbs == destAbs {
		return dest, nil
	}

	data, err := os.ReadFile(entry)
	if err != nil {
		return "", fmt.Errorf("read entry CSS: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("stage entry CSS: %w", err)
	}
	return dest, nil
}
