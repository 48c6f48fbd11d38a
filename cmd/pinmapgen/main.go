// Package main is the pinmapgen command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/pinmapgen/pinmapgen/cli"
	_ "github.com/pinmapgen/pinmapgen/components/register"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewApp(cli.Options{}).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
