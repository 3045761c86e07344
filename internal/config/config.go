// Package config loads CLI defaults from a YAML or JSON file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// AutoDelimiter as the delimiter asks for detection from the input.
const AutoDelimiter = "auto"

// Properties holds the settings a config file may provide.
// Command-line flags take precedence over every value here.
type Properties struct {
	Delimiter string `json:"delimiter"`
	Quote     string `json:"quote"`
	Columns   []int  `json:"columns"`
	Verbose   bool   `json:"verbose"`
}

// Default returns the built-in settings.
func Default() *Properties {
	return &Properties{
		Delimiter: ",",
		Quote:     `"`,
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML (or JSON) over the defaults.
func Parse(data []byte) (*Properties, error) {
	props := Default()
	if err := yaml.Unmarshal(data, props); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return props, nil
}

// Validate checks that the decoded values are usable.
func (p *Properties) Validate() error {
	if p.Delimiter != AutoDelimiter {
		if _, err := ParseChar(p.Delimiter); err != nil {
			return fmt.Errorf("invalid delimiter: %w", err)
		}
	}
	if _, err := ParseChar(p.Quote); err != nil {
		return fmt.Errorf("invalid quote: %w", err)
	}
	for _, c := range p.Columns {
		if c < 0 {
			return fmt.Errorf("invalid columns: negative index %d", c)
		}
	}
	return nil
}

// ParseChar converts a delimiter or quote argument to a single byte.
// The first byte is used; `\t` and "tab" both mean a tab character.
func ParseChar(s string) (byte, error) {
	switch s {
	case "":
		return 0, errors.New("empty character")
	case `\t`, "tab":
		return '\t', nil
	}
	return s[0], nil
}
