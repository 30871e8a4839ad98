package steps

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is a project rules pack loaded from --rules. JSON is accepted as
// well since it parses as YAML.
type Rules struct {
	Focus       []string        `yaml:"focus,omitempty"`
	Conventions []string        `yaml:"conventions,omitempty"`
	Required    []RequiredCheck `yaml:"required,omitempty"`
}

// RequiredCheck is a check every matching step must evaluate. An empty
// Steps list matches every step except Overview.
type RequiredCheck struct {
	ID    string   `yaml:"id"`
	Text  string   `yaml:"text"`
	Steps []string `yaml:"steps,omitempty"`
}

// LoadRules reads a rules pack. An empty path yields nil rules.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	for i, req := range rules.Required {
		if strings.TrimSpace(req.Text) == "" {
			return nil, fmt.Errorf("parsing rules file: required check %d has no text", i+1)
		}
	}
	return &rules, nil
}

// Section returns the prompt instructions the rules add to step. Overview
// stays descriptive, so it only receives the project conventions.
func (r *Rules) Section(step string) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	if len(r.Conventions) > 0 {
		b.WriteString("\n## Project Conventions\n")
		for _, c := range r.Conventions {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if step == "Overview" {
		return b.String()
	}

	if len(r.Focus) > 0 {
		fmt.Fprintf(&b, "\nFocus areas: %s. Prioritize findings in these areas.\n",
			strings.Join(r.Focus, ", "))
	}

	var checks []RequiredCheck
	for _, req := range r.Required {
		if req.appliesTo(step) {
			checks = append(checks, req)
		}
	}
	if len(checks) > 0 {
		b.WriteString("\nRequired checks (always evaluate these):\n")
		for _, req := range checks {
			if req.ID != "" {
				fmt.Fprintf(&b, "- [%s] %s\n", req.ID, req.Text)
			} else {
				fmt.Fprintf(&b, "- %s\n", req.Text)
			}
		}
	}
	return b.String()
}

func (c RequiredCheck) appliesTo(step string) bool {
	if len(c.Steps) == 0 {
		return true
	}
	for _, s := range c.Steps {
		if strings.EqualFold(s, step) {
			return true
		}
	}
	return false
}
