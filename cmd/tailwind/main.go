// Package main runs the Tailwind asset pipeline command.
//
// The binary answers to whatever name it is installed under, so `tw` and
// `tailwindcss` symlinks behave as aliases.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	tailwindcmd "github.com/sparkplayhouse/playhouse.site/internal/cmd/tailwind"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/config"
)

func main() {
	name := path.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("[%s] ", strings.ToUpper(name)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg, rest, err := tailwindcmd.ParseConfig(fs, os.Args[1:], nil)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	if err := tailwindcmd.Run(ctx, cfg, rest, os.Stdout); err != nil {
		config.Exitf("%v", err)
	}
}
