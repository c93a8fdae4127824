package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"facegrid/grid"
	"facegrid/parallel"

	"github.com/alecthomas/kong"
)

const description = `Creates a grid of face images.

Each input image is scaled and cropped to fill one cell; cells are filled row by row.`

type CLI struct {
	Workers   int    `help:"Number of images decoded in parallel, 0 uses all CPUs" default:"0"`
	LogLevel  string `help:"Minimum level of log messages" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log output format" enum:"text,json" default:"text"`

	Grid grid.CLICmd `cmd:"" default:"withargs" help:"Compose a grid image (default command)"`
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("face-grid"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	slog.SetDefault(newLogger(cli.LogLevel, cli.LogFormat))

	pool := parallel.Start(cli.Workers)
	slog.Debug("started", "workers", pool.Size())

	err := kctx.Run(pool.Do, pool.Wait)
	stop()
	kctx.FatalIfErrorf(err)
}
