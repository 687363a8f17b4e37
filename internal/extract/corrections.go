package extract

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// AddressCorrection replaces a stop's decomposed address when a known
// partner location is recognized. These cover sites whose source text is
// reliably mangled (e.g. a port address split across unrelated lines); they
// are data, not pipeline logic, and can be overlaid from a YAML file.
type AddressCorrection struct {
	Stop         StopType `yaml:"stop"`
	NameContains string   `yaml:"name_contains,omitempty"`
	AddressMatch string   `yaml:"address_match,omitempty"`

	StreetAddress string `yaml:"street_address"`
	PostalCode    string `yaml:"postal_code"`
	City          string `yaml:"city"`
	Country       string `yaml:"country"`

	addressRe *regexp.Regexp
}

func (c *AddressCorrection) compile() error {
	if c.AddressMatch == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + c.AddressMatch)
	if err != nil {
		return fmt.Errorf("correction address_match %q: %w", c.AddressMatch, err)
	}
	c.addressRe = re
	return nil
}

// Apply rewrites the stop's address fields when the correction matches.
func (c AddressCorrection) Apply(s *Stop) {
	if c.Stop != "" && s.Type != c.Stop {
		return
	}
	if c.NameContains != "" {
		if s.Name == "" || !strings.Contains(strings.ToUpper(s.Name), strings.ToUpper(c.NameContains)) {
			return
		}
	}
	if c.addressRe != nil {
		if s.Address == "" || !c.addressRe.MatchString(s.Address) {
			return
		}
	}
	if c.NameContains == "" && c.addressRe == nil {
		return
	}
	s.Address = c.StreetAddress
	s.PostalCode = c.PostalCode
	s.City = c.City
	s.Country = c.Country
}

// CorrectionsFile is the YAML overlay shape: format name -> corrections.
type CorrectionsFile struct {
	Formats map[string][]AddressCorrection `yaml:"formats"`
}

// LoadCorrections reads a correction overlay from path. An empty path keeps
// the built-in defaults; a missing or malformed file is an error so that a
// typo never silently disables corrections.
func LoadCorrections(path string) (map[string][]AddressCorrection, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corrections file: %w", err)
	}
	var file CorrectionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse corrections file: %w", err)
	}
	for name, list := range file.Formats {
		for i := range list {
			if err := list[i].compile(); err != nil {
				return nil, fmt.Errorf("format %s: %w", name, err)
			}
		}
		file.Formats[name] = list
	}
	return file.Formats, nil
}

// MustCorrections compiles built-in correction defaults and panics on a bad
// pattern; defaults are package constants so this only trips in development.
func MustCorrections(list []AddressCorrection) []AddressCorrection {
	for i := range list {
		if err := list[i].compile(); err != nil {
			panic(err)
		}
	}
	return list
}
