// Package cli is the kong command-line surface of sass-to-typescript.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"bennypowers.dev/sass2ts/internal/config"
	"bennypowers.dev/sass2ts/internal/log"
)

const (
	name        = "sass-to-typescript"
	description = "Generate a typed, overridable TypeScript theme factory from Sass variables."
)

// Streams are the standard streams commands read from and write to
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// logLevel applies itself to the package logger while kong parses, so that
// errors reported during parsing already honour it.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler
func (l *logLevel) UnmarshalText(text []byte) error {
	level, err := log.ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = logLevel(text)
	log.SetLevel(level)
	return nil
}

// CLI is the top-level command-line interface
type CLI struct {
	Config     string   `help:"Configuration file. Defaults to .sass2ts.{yaml,yml,json,jsonc} or the package.json block in the working directory." short:"c" type:"existingfile"`
	LogLevel   logLevel `default:"warn" enum:"debug,info,warn,error" help:"Set log level."`
	CPUProfile string   `help:"Write a CPU profile into this directory." name:"cpuprofile" type:"path"`
	Strict     bool     `help:"Fail on references to undeclared variables."`

	Generate    Generate    `cmd:"" default:"withargs" help:"Generate the TypeScript theme module."`
	Descriptors Descriptors `cmd:"" help:"Dump the classified declarations in dependency order."`
	Lint        Lint        `cmd:"" help:"Report references to undeclared variables."`
	Preview     Preview     `cmd:"" help:"Print the theme the generated factory would return."`
	Version     Version     `cmd:"" help:"Print build information."`
}

// Run parses args and executes the selected command. exit is called by kong
// for --help and usage errors.
func Run(streams Streams, exit func(code int), args ...string) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(streams.Out, streams.Err),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cli.CPUProfile), profile.Quiet).Stop()
	}

	env, err := cli.env(streams)
	if err != nil {
		return err
	}
	return ktx.Run(env)
}

// env loads the configuration the commands share. An explicit --config
// must exist; otherwise the working directory is searched.
func (c *CLI) env(streams Streams) (*Env, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if c.Config != "" {
		path = c.Config
		cfg, err = config.Load(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, path, err = config.Find(wd)
	}
	if err != nil {
		return nil, err
	}
	if c.Strict {
		cfg.Strict = true
	}

	if path != "" {
		log.Debug("using configuration %s", path)
	}
	return &Env{Streams: streams, Config: cfg, ConfigPath: path}, nil
}
