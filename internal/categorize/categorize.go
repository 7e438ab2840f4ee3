// Package categorize assigns spending categories to transaction descriptions
// using an ordered keyword rule table.
package categorize

import (
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// Categorizer matches descriptions against an ordered rule table.
// It is immutable after construction and safe for concurrent use.
type Categorizer struct {
	rules []Rule
}

// New creates a Categorizer. Rules are tried in the order given.
func New(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Default returns a Categorizer over DefaultRules.
func Default() *Categorizer {
	return New(DefaultRules())
}

// WithOverrides returns a Categorizer that tries extra before the built-in rules.
func WithOverrides(extra []Rule) *Categorizer {
	rules := make([]Rule, 0, len(extra)+len(defaultPatterns))
	rules = append(rules, extra...)
	rules = append(rules, DefaultRules()...)
	return New(rules)
}

// Categorize returns the first matching category, or Other.
func (c *Categorizer) Categorize(description string) model.Category {
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		if r.Pattern.MatchString(desc) {
			return r.Category
		}
	}
	return model.CategoryOther
}

// Rules returns a copy of the rule table.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
