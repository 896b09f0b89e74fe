// Package main runs the site HTTP server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/sparkplayhouse/playhouse.site/internal/cmd/web"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/config"
)

func main() {
	log.SetPrefix("[WEB] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet("web", flag.ExitOnError)
	settings, err := webcmd.ParseConfig(fs, os.Args[1:], nil)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	if err := webcmd.Run(ctx, settings); err != nil {
		config.Exitf("%v", err)
	}
}
