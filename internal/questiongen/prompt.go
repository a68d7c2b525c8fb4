package questiongen

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RolePlaceholder is replaced with the role name in the generic template.
const RolePlaceholder = "{role}"

// Catalog holds every prompt template the generator can send.
type Catalog struct {
	// Coding maps a role to its dedicated coding template. Lookup is exact.
	Coding map[string]string `yaml:"coding"`

	// Generic is the coding template for roles missing from Coding.
	Generic string `yaml:"generic"`

	Technical  string `yaml:"technical"`
	Behavioral string `yaml:"behavioral"`
}

// DefaultCatalog returns the built-in templates.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Coding: map[string]string{
			"Python":       "Generate a unique Python coding interview question (medium complexity, 1-3 years experience, output only the question).",
			"JavaScript":   "Generate a unique JavaScript coding interview question (medium complexity, 1-3 years experience, output only the question).",
			"Java":         "Generate a unique Java coding interview question (medium complexity, 1-3 years experience, output only the question).",
			"C++":          "Generate a unique C++ coding interview question (medium complexity, 1-3 years experience, output only the question).",
			"Data Science": "Generate a unique data science coding interview question (e.g., pandas, numpy, scikit-learn; 1-3 years experience, output only the question).",
			"React":        "Generate a unique React coding interview question (e.g., write a component, manage state, hooks; 1-3 years experience, output only the question).",
			"SQL":          "Generate a unique SQL coding question (write a query or function, medium complexity, 1-3 years experience, output only the question).",
			"DevOps":       "Generate a unique DevOps coding question (e.g., scripting, CI/CD, Docker; 1-3 years experience, output only the question).",
		},
		Generic:    "Generate a unique {role} coding interview question for 1-3 years experience. Output only the question.",
		Technical:  "Generate a real-world technical interview question commonly asked in campus placements for freshers or candidates with 1-3 years experience. Avoid stack-specific or coding questions. Output only the question.",
		Behavioral: "Generate a behavioral or aptitude interview question suitable for campus placements or job interviews for freshers or candidates with 1-3 years experience. Output only the question.",
	}
}

// Prompt picks the template for role and t.
func (c *Catalog) Prompt(role string, t QuestionType) (string, error) {
	switch t {
	case Coding:
		if tmpl, ok := c.Coding[role]; ok {
			return tmpl, nil
		}
		return strings.ReplaceAll(c.Generic, RolePlaceholder, role), nil
	case Technical:
		return c.Technical, nil
	case Behavioral:
		return c.Behavioral, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, string(t))
}

// LoadCatalog reads a YAML catalog from path and layers it over the
// built-in templates. Keys left out of the file keep their default.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt catalog %s: %w", path, err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse prompt catalog %s: %w", path, err)
	}

	c := DefaultCatalog()
	for role, tmpl := range override.Coding {
		c.Coding[role] = tmpl
	}
	if override.Generic != "" {
		if !strings.Contains(override.Generic, RolePlaceholder) {
			return nil, fmt.Errorf("prompt catalog %s: generic template must contain %s", path, RolePlaceholder)
		}
		c.Generic = override.Generic
	}
	if override.Technical != "" {
		c.Technical = override.Technical
	}
	if override.Behavioral != "" {
		c.Behavioral = override.Behavioral
	}
	return c, nil
}
