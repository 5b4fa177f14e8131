package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/cardstock/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	presetsPath := flag.String("presets", "", "override presets file (optional)")
	logLevel := flag.String("loglevel", "", "debug, info, warn or error (optional)")
	logFile := flag.String("logfile", "", "write logs to this file (optional)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cardstock [flags] [export.json]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PresetsPath: *presetsPath,
		LogLevel:    *logLevel,
		LogFile:     *logFile,
		ImportPath:  flag.Arg(0),
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cardstock: %v\n", err)
		return 1
	}
	return 0
}
