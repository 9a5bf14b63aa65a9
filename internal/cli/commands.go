package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/sass2ts/internal/lint"
	"bennypowers.dev/sass2ts/internal/log"
	"bennypowers.dev/sass2ts/internal/preview"
	"bennypowers.dev/sass2ts/internal/version"
)

// Generate writes the theme module
type Generate struct {
	Paths  []string `arg:"" help:"Sass files or directories, or '-' for stdin." optional:""`
	Output string   `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

// Run executes the command
func (g *Generate) Run(env *Env) error {
	src, err := env.Source(g.Paths)
	if err != nil {
		return err
	}
	out, err := env.Pipeline().Generate(src)
	if err != nil {
		return err
	}
	if g.Output == "" {
		_, err = io.WriteString(env.Out, out)
		return err
	}
	if err := os.WriteFile(g.Output, []byte(out), 0o644); err != nil { //nolint:gosec // G306: generated source is world-readable
		return fmt.Errorf("failed to write %s: %w", g.Output, err)
	}
	log.Info("wrote %s", g.Output)
	return nil
}

// Descriptors dumps the pipeline's intermediate records
type Descriptors struct {
	Paths    []string `arg:"" help:"Sass files or directories, or '-' for stdin." optional:""`
	Format   string   `default:"yaml" enum:"yaml,json" help:"Output format." short:"f"`
	Resolved bool     `help:"Include resolved values and published types."`
}

// Run executes the command
func (d *Descriptors) Run(env *Env) error {
	src, err := env.Source(d.Paths)
	if err != nil {
		return err
	}

	var doc any
	if d.Resolved {
		doc, err = env.Pipeline().Resolve(src)
	} else {
		doc, err = env.Pipeline().Descriptors(src)
	}
	if err != nil {
		return err
	}
	return encode(env.Out, d.Format, doc)
}

// Lint reports dangling references
type Lint struct {
	Paths []string `arg:"" help:"Sass files or directories, or '-' for stdin." optional:""`
}

// Run executes the command. Any finding is an error.
func (l *Lint) Run(env *Env) error {
	src, err := env.Source(l.Paths)
	if err != nil {
		return err
	}
	findings, err := env.Pipeline().Lint(src)
	if err != nil {
		return err
	}
	for _, f := range findings {
		fmt.Fprintln(env.Out, f.Err())
	}
	if len(findings) > 0 {
		return fmt.Errorf("%d undeclared reference(s): %w", len(findings), lint.Err(findings))
	}
	return nil
}

// Preview prints the realised theme
type Preview struct {
	Paths  []string          `arg:"" help:"Sass files or directories, or '-' for stdin." optional:""`
	Set    map[string]string `help:"Override a variable by its camelCase name." placeholder:"NAME=VALUE"`
	Format string            `default:"yaml" enum:"yaml,json" help:"Output format." short:"f"`
}

// Run executes the command
func (p *Preview) Run(env *Env) error {
	src, err := env.Source(p.Paths)
	if err != nil {
		return err
	}
	sorted, err := env.Pipeline().Descriptors(src)
	if err != nil {
		return err
	}
	// variables that failed to realise still print their best-effort text
	theme, realiseErr := preview.New(preview.WithLogger(log.Named("preview"))).Realise(sorted, p.Set)
	if err := encode(env.Out, p.Format, theme); err != nil {
		return err
	}
	return realiseErr
}

// Version prints build information
type Version struct{}

// Run executes the command
func (Version) Run(env *Env) error {
	_, err := fmt.Fprintf(env.Out, "%s %s\n", name, version.Get())
	return err
}

func encode(w io.Writer, format string, doc any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
}
