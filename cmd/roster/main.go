package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/roster/internal/cli"
	"github.com/idilsaglam/roster/internal/config"
	"github.com/idilsaglam/roster/internal/logger"
	"github.com/idilsaglam/roster/internal/ui"
)

func main() {
	cfg := config.FromEnv()

	// Root flags (apply to every subcommand); env values are the defaults.
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "student API base URL")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "classic | neon | mono")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout (0 = none)")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write JSON logs to this file")
	flag.Usage = cli.PrintHelp
	flag.Parse()
	cfg = cfg.Normalize()

	ui.SetTheme(cfg.Theme)

	log, closeLog, err := logger.New(cfg.LogFile)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, flag.Args(), cli.Options{Config: cfg, Logger: log})
	stop()
	_ = closeLog()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
