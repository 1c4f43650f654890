// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Layout modes a theme can declare.
const (
	LayoutGrid     = "grid"
	LayoutList     = "list"
	LayoutMagazine = "magazine"
	LayoutMinimal  = "minimal"
)

// Spacing classes a theme can declare.
const (
	SpacingTight       = "tight"
	SpacingComfortable = "comfortable"
	SpacingRelaxed     = "relaxed"
)

// Shadow styles with a dedicated lookup entry. Any other value is accepted
// and rendered with the modern table.
const (
	ShadowNone          = "none"
	ShadowSubtle        = "subtle"
	ShadowModern        = "modern"
	ShadowDramatic      = "dramatic"
	ShadowGlassmorphism = "glassmorphism"
	ShadowNeon          = "neon"
)

// ThemeStyles is the visual definition shared by every blog using a theme.
type ThemeStyles struct {
	PrimaryColor    string `json:"primaryColor" yaml:"primary_color"`
	SecondaryColor  string `json:"secondaryColor" yaml:"secondary_color"`
	AccentColor     string `json:"accentColor" yaml:"accent_color"`
	TextColor       string `json:"textColor" yaml:"text_color"`
	BackgroundColor string `json:"backgroundColor" yaml:"background_color"`
	BodyFont        string `json:"bodyFont" yaml:"body_font"`
	HeadingFont     string `json:"headingFont" yaml:"heading_font"`
	CodeFont        string `json:"codeFont" yaml:"code_font"`
	Layout          string `json:"layout" yaml:"layout"`
	Spacing         string `json:"spacing" yaml:"spacing"`
	BorderRadius    string `json:"borderRadius" yaml:"border_radius"`
	Shadow          string `json:"shadow" yaml:"shadow"`
}

// ThemeDefinition is a catalog entry. Tenants select one but never modify it.
// Version is bumped on every platform-side update.
type ThemeDefinition struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Category  string      `json:"category" yaml:"category"`
	Version   int         `json:"version" yaml:"-"`
	Styles    ThemeStyles `json:"styles" yaml:"styles"`
	CreatedAt time.Time   `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time   `json:"updatedAt" yaml:"-"`
}

// BaselineThemeID identifies the hardcoded theme used when no catalog entry
// can be loaded.
const BaselineThemeID = "baseline"

// BaselineTheme returns the platform fallback theme. Every style field is set
// so it can backfill any field missing from a catalog entry.
func BaselineTheme() ThemeDefinition {
	return ThemeDefinition{
		ID:       BaselineThemeID,
		Name:     "Baseline",
		Category: "system",
		Styles: ThemeStyles{
			PrimaryColor:    "#2563eb",
			SecondaryColor:  "#f8fafc",
			AccentColor:     "#3b82f6",
			TextColor:       "#1f2937",
			BackgroundColor: "#ffffff",
			BodyFont:        "Inter",
			HeadingFont:     "Inter",
			CodeFont:        "JetBrains Mono",
			Layout:          LayoutGrid,
			Spacing:         SpacingComfortable,
			BorderRadius:    "0.5rem",
			Shadow:          ShadowModern,
		},
	}
}

// WithDefaults returns a copy of t whose empty style fields are filled from
// the baseline theme.
func (t ThemeDefinition) WithDefaults() ThemeDefinition {
	base := BaselineTheme().Styles
	s := &t.Styles
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}
	fill(&s.PrimaryColor, base.PrimaryColor)
	fill(&s.SecondaryColor, base.SecondaryColor)
	fill(&s.AccentColor, base.AccentColor)
	fill(&s.TextColor, base.TextColor)
	fill(&s.BackgroundColor, base.BackgroundColor)
	fill(&s.BodyFont, base.BodyFont)
	fill(&s.HeadingFont, base.HeadingFont)
	fill(&s.CodeFont, base.CodeFont)
	fill(&s.Layout, base.Layout)
	fill(&s.Spacing, base.Spacing)
	fill(&s.BorderRadius, base.BorderRadius)
	fill(&s.Shadow, base.Shadow)
	if t.ID == "" {
		t.ID = BaselineThemeID
	}
	return t
}
