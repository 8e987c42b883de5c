package manifest

import "strings"

// Rule maps a raw header label to a canonical column name. A label matches
// when it contains every substring in All and, if Any is non-empty, at least
// one substring in Any. Matching is case-insensitive on the trimmed label.
type Rule struct {
	Canonical string   `yaml:"canonical"`
	All       []string `yaml:"all,omitempty"`
	Any       []string `yaml:"any,omitempty"`
}

func (r Rule) matches(label string) bool {
	for _, marker := range r.All {
		if !strings.Contains(label, marker) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, marker := range r.Any {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in header mapping rules, evaluated in
// priority order with the first match winning.
func DefaultRules() []Rule {
	return []Rule{
		{Canonical: ColSender, All: []string{"remetent"}},
		{Canonical: ColOriginAddress, All: []string{"orig"}, Any: []string{"endereço", "endereco"}},
		{Canonical: ColOriginPostalCode, All: []string{"cep", "orig"}},
		{Canonical: ColDestinationAddress, All: []string{"dest"}, Any: []string{"endereço", "endereco"}},
		{Canonical: ColDestinee, All: []string{"destinat"}},
	}
}

// requiredColumns are guaranteed to exist downstream; the mapper synthesizes
// them (empty) when no source column maps onto them.
var requiredColumns = []string{ColSender, ColOriginAddress, ColOriginPostalCode}

// MapColumns reconciles raw header labels to canonical names. Labels
// matching no rule keep their original name, so no source information is
// lost.
func MapColumns(header []string, rules []Rule) []string {
	mapped := make([]string, len(header))
	for i, raw := range header {
		mapped[i] = mapColumn(raw, rules)
	}
	return mapped
}

func mapColumn(raw string, rules []Rule) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range rules {
		if rule.matches(label) {
			return rule.Canonical
		}
	}
	return raw
}
