package model

import "strings"

// Replacement is one literal substitution applied by SanitizeName.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultReplacements returns the substitutions used when none are configured.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{From: " ", To: "_"},
		{From: "-", To: "_"},
		{From: "#", To: "NUM"},
		{From: "%", To: "PERCENT"},
	}
}

// SanitizeName maps a raw column or table label to an identifier by applying
// each replacement in order. With no replacements the defaults are used.
//
// Characters not covered by a replacement are left as they are; callers still
// quote the result before splicing it into SQL.
func SanitizeName(label string, replacements ...Replacement) string {
	if len(replacements) == 0 {
		replacements = DefaultReplacements()
	}
	for _, r := range replacements {
		if r.From == "" {
			continue
		}
		label = strings.ReplaceAll(label, r.From, r.To)
	}
	return label
}

// QuoteIdentifier returns name as a double-quoted SQL identifier.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
