// Package rules holds the keyword heuristics shared by the filename and
// metadata stages. Rules ship embedded in the binary and can be replaced at
// deploy time with a YAML file, keeping label vocabularies out of code.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRulesYAML []byte

type ruleSpec struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

type fileSpec struct {
	Rules []ruleSpec `yaml:"rules"`
}

// Rule maps one compiled pattern to a document label.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// Set is an ordered rule list; earlier rules take precedence.
type Set struct {
	rules []Rule
}

// Default returns the embedded rule set. The embedded YAML is validated by
// tests, so a parse failure here is a programming error.
func Default() *Set {
	set, err := parse(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("rules: embedded default_rules.yaml is invalid: %v", err))
	}
	return set
}

// Load reads a rule set from path. An empty path falls back to the embedded
// defaults.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	set, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return set, nil
}

func parse(raw []byte) (*Set, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if len(spec.Rules) == 0 {
		return nil, fmt.Errorf("no rules defined")
	}

	set := &Set{rules: make([]Rule, 0, len(spec.Rules))}
	for i, r := range spec.Rules {
		if r.Label == "" {
			return nil, fmt.Errorf("rule %d: label is required", i)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Label, err)
		}
		set.rules = append(set.rules, Rule{Label: r.Label, Pattern: re})
	}
	return set, nil
}

// Match returns the label of the first rule matching s, if any.
func (s *Set) Match(text string) (string, bool) {
	for _, r := range s.rules {
		if r.Pattern.MatchString(text) {
			return r.Label, true
		}
	}
	return "", false
}

// MatchAnchored behaves like Match and additionally reports whether the
// match sits at the very start of text. The filename stage boosts
// confidence for anchored matches.
func (s *Set) MatchAnchored(text string) (label string, anchored bool, ok bool) {
	for _, r := range s.rules {
		loc := r.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		return r.Label, loc[0] == 0, true
	}
	return "", false, false
}

// Len reports the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}
