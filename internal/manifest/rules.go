package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of a column mapping rule override.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules loads column mapping rules from a YAML file. An empty path
// returns the built-in defaults. A file that exists but holds no rules is an
// error: silently matching nothing would make every upload report zero
// repeats.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("error reading column rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("error parsing column rules file: %w", err)
	}

	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("column rules file %s defines no rules", path)
	}

	for i, r := range rf.Rules {
		if r.Canonical == "" {
			return nil, fmt.Errorf("column rule %d has no canonical name", i)
		}
		if len(r.All) == 0 && len(r.Any) == 0 {
			return nil, fmt.Errorf("column rule %d (%s) has no markers", i, r.Canonical)
		}
	}

	return rf.Rules, nil
}
