// Package lint reports dependencies that name no declaration.
package lint

import (
	"strconv"

	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/sahilm/fuzzy"
	"go.uber.org/multierr"
)

// MaxSuggestions caps the "did you mean" list of a finding
const MaxSuggestions = 3

// Finding is one dependency on an undeclared variable
type Finding struct {
	Name        string   `yaml:"name" json:"name"`
	Missing     string   `yaml:"missing" json:"missing"`
	Suggestions []string `yaml:"suggestions,omitempty" json:"suggestions,omitempty"`
}

// Err converts the finding to a DanglingReferenceError
func (f Finding) Err() error {
	return schema.NewDanglingReferenceError(f.Name, f.Missing, f.Suggestions)
}

// Check returns one finding per distinct missing dependency of each
// descriptor, in declaration order. The literal members of number arrays
// are not references.
func Check(ds []schema.Descriptor) []Finding {
	declared := make([]string, 0, len(ds))
	known := collections.NewSet[string]()
	for _, d := range ds {
		declared = append(declared, d.Name)
		known.Add(schema.CanonicalName(d.Name))
	}

	var findings []Finding
	for _, d := range ds {
		for _, dep := range collections.Unique(d.Dependencies) {
			if known.Has(schema.CanonicalName(dep)) || isLiteral(d, dep) {
				continue
			}
			findings = append(findings, Finding{
				Name:        d.Name,
				Missing:     dep,
				Suggestions: suggest(dep, declared),
			})
		}
	}
	return findings
}

// Err combines findings into one error, nil when there are none
func Err(findings []Finding) error {
	var err error
	for _, f := range findings {
		err = multierr.Append(err, f.Err())
	}
	return err
}

func isLiteral(d schema.Descriptor, dep string) bool {
	if d.Type != schema.Array || d.InnerType != schema.Number {
		return false
	}
	_, err := strconv.ParseFloat(dep, 64)
	return err == nil
}

func suggest(missing string, declared []string) []string {
	matches := fuzzy.Find(missing, declared)
	var out []string
	for _, m := range matches {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
