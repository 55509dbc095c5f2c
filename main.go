package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/betterjpeg/cmd"
	"github.com/lepinkainen/betterjpeg/config"
	"github.com/lepinkainen/betterjpeg/types"
)

var Version = "dev"

type CLI struct {
	Version kong.VersionFlag `help:"Show version and exit."`

	Optimize cmd.OptimizeCmd `cmd:"" default:"withargs" help:"Recompress JPEG files in place (default command)"`
	Scan     cmd.ScanCmd     `cmd:"" help:"List the files an optimize run would process"`
	Check    cmd.CheckCmd    `cmd:"" help:"Check that the encoder is installed"`
}

// kongVars exposes configuration values as flag defaults, so flags always win
func kongVars(cfg *config.Config) kong.Vars {
	return kong.Vars{
		"version":      Version,
		"workers":      strconv.Itoa(cfg.Workers),
		"executable":   cfg.Encoder.Executable,
		"encoder_args": cfg.Encoder.Args,
	}
}

// newParser builds the kong parser with config-derived defaults and the
// values bound into command Run methods
func newParser(cli *CLI, cfg *config.Config, appCtx *types.AppContext, extra ...kong.Option) (*kong.Kong, error) {
	options := []kong.Option{
		kong.Name("betterjpeg"),
		kong.Description("Recompress JPEG files in place with an external encoder."),
		kong.UsageOnError(),
		kongVars(cfg),
		kong.Bind(appCtx, cfg),
	}
	return kong.New(cli, append(options, extra...)...)
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterjpeg: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	appCtx := &types.AppContext{Version: Version}

	parser, err := newParser(&cli, cfg, appCtx)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
