// Command fxdemo inspects and renders the fx effects.
//
// Usage:
//
//	fxdemo caps     [flags]   print detected capabilities and effect flags
//	fxdemo snapshot [flags]   render effects to PNG files
//	fxdemo preview  [flags]   animate effects in the terminal
//
// Flags may also be given in a TOML file passed with -config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/fx"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "caps":
		err = runCaps(ctx, args)
	case "snapshot":
		err = runSnapshot(ctx, args)
	case "preview":
		err = runPreview(ctx, args)
	case "help", "-h", "-help", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "fxdemo: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("fxdemo: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fxdemo caps|snapshot|preview [flags]")
	fmt.Fprintln(os.Stderr, "run 'fxdemo <command> -h' for the flags of a command")
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	fx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
