package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// patternsFile is the on-disk shape of the trigger phrase table.
type patternsFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// LoadPatterns reads the static trigger phrase table from a YAML file.
// The table is read-only at runtime; validation happens here so a bad
// entry fails startup instead of silently never matching.
func LoadPatterns(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternsLoaded, err)
	}
	return ParsePatterns(data)
}

// ParsePatterns parses and validates raw YAML pattern data.
func ParsePatterns(data []byte) ([]Pattern, error) {
	var file patternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse intent patterns: %w", err)
	}
	if len(file.Patterns) == 0 {
		return nil, ErrNoPatterns
	}

	for i, p := range file.Patterns {
		if _, ok := Known(string(p.Intent)); !ok {
			return nil, fmt.Errorf("%w: entry %d (%q)", ErrUnknownIntent, i, p.Intent)
		}
		if len(p.Phrases) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s)", ErrEmptyTriggers, i, p.Intent)
		}
	}

	return file.Patterns, nil
}
