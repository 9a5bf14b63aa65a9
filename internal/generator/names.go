package generator

// Names are the identifiers used in the generated module
type Names struct {
	Vars            string `yaml:"vars" json:"vars"`
	Theme           string `yaml:"theme" json:"theme"`
	Methods         string `yaml:"methods" json:"methods"`
	InjectedMethods string `yaml:"injectedMethods" json:"injectedMethods"`
	Factory         string `yaml:"factory" json:"factory"`
	Override        string `yaml:"override" json:"override"`
}

// DefaultNames returns the names of the Bulma theme factory
func DefaultNames() Names {
	return Names{
		Vars:            "BulmaVars",
		Theme:           "BulmaTheme",
		Methods:         "Methods",
		InjectedMethods: "InjectedMethods",
		Factory:         "makeBasicTheme",
		Override:        "overriding",
	}
}

// WithDefaults fills every empty name from DefaultNames
func (n Names) WithDefaults() Names {
	d := DefaultNames()
	fill(&n.Vars, d.Vars)
	fill(&n.Theme, d.Theme)
	fill(&n.Methods, d.Methods)
	fill(&n.InjectedMethods, d.InjectedMethods)
	fill(&n.Factory, d.Factory)
	fill(&n.Override, d.Override)
	return n
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// Fields lists the names keyed by their configuration field
func (n Names) Fields() map[string]string {
	return map[string]string{
		"vars":            n.Vars,
		"theme":           n.Theme,
		"methods":         n.Methods,
		"injectedMethods": n.InjectedMethods,
		"factory":         n.Factory,
		"override":        n.Override,
	}
}
