// Package pipeline is the single entry point that turns Sass variable
// declarations into a TypeScript theme module.
package pipeline

import (
	"fmt"
	"strings"

	"bennypowers.dev/sass2ts/internal/classify"
	"bennypowers.dev/sass2ts/internal/config"
	"bennypowers.dev/sass2ts/internal/generator"
	"bennypowers.dev/sass2ts/internal/lint"
	"bennypowers.dev/sass2ts/internal/parser/sass"
	"bennypowers.dev/sass2ts/internal/resolver"
	"bennypowers.dev/sass2ts/internal/schema"
	"go.uber.org/zap"
)

// Result holds every intermediate form of one run
type Result struct {
	// Sorted are the classified descriptors in dependency order
	Sorted []schema.Descriptor `yaml:"sorted" json:"sorted"`
	// Resolved carry camel-cased names and TypeScript values
	Resolved []schema.Descriptor `yaml:"resolved" json:"resolved"`
	// Types are the published types of Resolved, index for index
	Types []resolver.Published `yaml:"types" json:"types"`
}

// Pipeline runs parse, classify, sort, resolve and assemble. A Pipeline
// holds no per-run state and may be used concurrently.
type Pipeline struct {
	cfg        *config.Config
	classifier *classify.Classifier
	log        *zap.Logger
}

// New creates a Pipeline. A nil cfg means config.Default().
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg: cfg,
		classifier: classify.New(
			classify.WithNativeFunctions(cfg.NativeFunctions...),
			classify.WithColorFunctions(cfg.ColorFunctions...),
			classify.WithLogger(log.Named("classify")),
		),
		log: log,
	}
}

// Config returns the configuration the pipeline was built with
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Descriptors parses src and returns its classified declarations in
// dependency order. A dependency cycle is the only fatal resolution error.
func (p *Pipeline) Descriptors(src string) ([]schema.Descriptor, error) {
	root, err := sass.NewParser(sass.WithLogger(p.log.Named("parser"))).Parse([]byte(src))
	if err != nil {
		return nil, err
	}

	decls := classify.Declarations(root)
	classified := classify.LastWins(p.classifier.ClassifyAll(decls))
	if dropped := len(decls) - len(classified); dropped > 0 {
		p.log.Debug("declarations dropped or redeclared", zap.Int("count", dropped))
	}

	sorted, err := resolver.Sort(classified)
	if err != nil {
		return nil, fmt.Errorf("sorting declarations: %w", err)
	}
	if ce := p.log.Check(zap.DebugLevel, "sorted declarations"); ce != nil {
		names := make([]string, len(sorted))
		for i, d := range sorted {
			names[i] = d.Name
		}
		ce.Write(zap.String("order", strings.Join(names, " ")))
	}
	return sorted, nil
}

// Resolve runs every pass up to, but not including, assembly
func (p *Pipeline) Resolve(src string) (*Result, error) {
	sorted, err := p.Descriptors(src)
	if err != nil {
		return nil, err
	}
	resolved := resolver.ResolveValues(sorted)
	return &Result{
		Sorted:   sorted,
		Resolved: resolved,
		Types:    resolver.ResolveTypes(resolved),
	}, nil
}

// Lint reports dependencies on undeclared variables
func (p *Pipeline) Lint(src string) ([]lint.Finding, error) {
	sorted, err := p.Descriptors(src)
	if err != nil {
		return nil, err
	}
	return lint.Check(sorted), nil
}

// Generate returns the TypeScript module for src, or "" when src declares
// nothing classifiable. In strict mode dangling references are errors.
func (p *Pipeline) Generate(src string) (string, error) {
	res, err := p.Resolve(src)
	if err != nil {
		return "", err
	}
	if p.cfg.Strict {
		if err := lint.Err(lint.Check(res.Sorted)); err != nil {
			return "", err
		}
	}
	return generator.Assemble(res.Resolved, res.Types, p.cfg.Names), nil
}
