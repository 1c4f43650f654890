// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog loads the theme catalog from YAML. The built-in catalog is
// embedded; deployments can point CATALOG_PATH at their own file.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"inkwell/internal/color"
	"inkwell/internal/models"
	"inkwell/internal/slug"
)

//go:embed themes.yaml
var builtin []byte

var (
	validLayouts = []string{models.LayoutGrid, models.LayoutList, models.LayoutMagazine, models.LayoutMinimal}
	validSpacing = []string{models.SpacingTight, models.SpacingComfortable, models.SpacingRelaxed}
)

type catalogFile struct {
	Themes []models.ThemeDefinition `yaml:"themes"`
}

// Builtin returns the embedded catalog.
func Builtin() ([]models.ThemeDefinition, error) {
	return Parse(bytes.NewReader(builtin))
}

// Load reads a catalog file. An empty path returns the embedded catalog.
func Load(path string) ([]models.ThemeDefinition, error) {
	if path == "" {
		return Builtin()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a catalog. Entries without an id get one
// derived from their name. Every theme starts at version 1.
func Parse(r io.Reader) ([]models.ThemeDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Themes) == 0 {
		return nil, fmt.Errorf("catalog has no themes")
	}

	seen := make(map[string]bool, len(file.Themes))
	themes := make([]models.ThemeDefinition, 0, len(file.Themes))
	for i, def := range file.Themes {
		if def.ID == "" {
			def.ID = slug.Generate(def.Name)
		}
		if err := Validate(def); err != nil {
			return nil, fmt.Errorf("theme %d (%q): %w", i+1, def.ID, err)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate theme id %q", def.ID)
		}
		seen[def.ID] = true
		def.Version = 1
		themes = append(themes, def)
	}
	return themes, nil
}

// Validate checks a theme definition. Empty style fields are allowed and
// fall back to the baseline theme at resolution time.
func Validate(def models.ThemeDefinition) error {
	if !slug.Valid(def.ID) {
		return fmt.Errorf("invalid theme id %q", def.ID)
	}
	if def.Name == "" {
		return fmt.Errorf("theme name is required")
	}
	s := def.Styles
	for field, value := range map[string]string{
		"primary_color":    s.PrimaryColor,
		"secondary_color":  s.SecondaryColor,
		"accent_color":     s.AccentColor,
		"text_color":       s.TextColor,
		"background_color": s.BackgroundColor,
	} {
		if value != "" && !color.IsHex(value) {
			return fmt.Errorf("%s: invalid hex color %q", field, value)
		}
	}
	if s.Layout != "" && !slices.Contains(validLayouts, s.Layout) {
		return fmt.Errorf("layout: unknown value %q", s.Layout)
	}
	if s.Spacing != "" && !slices.Contains(validSpacing, s.Spacing) {
		return fmt.Errorf("spacing: unknown value %q", s.Spacing)
	}
	return nil
}
