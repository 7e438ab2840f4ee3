package categorize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements/internal/model"
)

// RuleFile is the on-disk shape of rules/categorization-rules.yaml.
type RuleFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one user-defined rule.
type RuleSpec struct {
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
}

// Compile validates the specs and compiles their patterns case-insensitively.
func (f RuleFile) Compile() ([]Rule, error) {
	rules := make([]Rule, 0, len(f.Rules))
	for i, spec := range f.Rules {
		cat, ok := model.ParseCategory(spec.Category)
		if !ok {
			return nil, fmt.Errorf("rule %d: unknown category %q", i+1, spec.Category)
		}
		if strings.TrimSpace(spec.Pattern) == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i+1)
		}
		re, err := regexp.Compile("(?i)" + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: compiling pattern %q: %w", i+1, spec.Pattern, err)
		}
		rules = append(rules, Rule{Category: cat, Pattern: re})
	}
	return rules, nil
}

// LoadFile reads a rule file and returns a Categorizer with its rules ahead
// of the defaults. A missing file yields the default Categorizer.
func LoadFile(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var f RuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	extra, err := f.Compile()
	if err != nil {
		return nil, err
	}
	return WithOverrides(extra), nil
}

// SaveFile writes a rule file.
func SaveFile(path string, f RuleFile) error {
	if f.Rules == nil {
		f.Rules = []RuleSpec{}
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
