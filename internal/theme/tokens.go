// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme turns a theme definition plus tenant customization into a
// flat set of style tokens, generates page-scoped stylesheets that reference
// those tokens, and decides the effective light/dark state.
package theme

import (
	"maps"
	"slices"
)

// Token names. Each is projected as the custom property "--theme-<name>".
const (
	TokenPrimary        = "primary"
	TokenSecondary      = "secondary"
	TokenAccent         = "accent"
	TokenPrimaryLight   = "primary-light"
	TokenPrimaryDark    = "primary-dark"
	TokenSecondaryLight = "secondary-light"
	TokenSecondaryDark  = "secondary-dark"
	TokenAccentLight    = "accent-light"
	TokenAccentDark     = "accent-dark"

	TokenHeaderBg   = "header-bg"
	TokenHeaderText = "header-text"
	TokenFooterBg   = "footer-bg"
	TokenFooterText = "footer-text"
	TokenSiteBg     = "site-bg"
	TokenSiteText   = "site-text"

	TokenFontFamily  = "font-family"
	TokenHeadingFont = "heading-font"
	TokenCodeFont    = "code-font"

	TokenBorderRadius = "border-radius"
	TokenSpacing      = "spacing"
	TokenShadowSm     = "shadow-sm"
	TokenShadowMd     = "shadow-md"
	TokenShadowLg     = "shadow-lg"

	TokenDarkPrimary   = "dark-primary"
	TokenDarkSecondary = "dark-secondary"
	TokenDarkAccent    = "dark-accent"
	TokenDarkBg        = "dark-bg"
	TokenDarkText      = "dark-text"

	TokenSectionFeatured   = "section-featured"
	TokenSectionRecent     = "section-recent"
	TokenSectionTrending   = "section-trending"
	TokenSectionCategories = "section-categories"
	TokenSectionNewsletter = "section-newsletter"
)

// PropertyPrefix prefixes every projected custom property.
const PropertyPrefix = "--theme-"

// Property returns the custom property name for a token.
func Property(name string) string {
	return PropertyPrefix + name
}

// Var returns a CSS var() reference to a token.
func Var(name string) string {
	return "var(" + Property(name) + ")"
}

// TokenSet maps token names to CSS values.
type TokenSet map[string]string

// Names returns the token names in sorted order.
func (t TokenSet) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns an independent copy of t.
func (t TokenSet) Clone() TokenSet {
	return maps.Clone(t)
}

// Equal reports whether t and other hold the same tokens.
func (t TokenSet) Equal(other TokenSet) bool {
	return maps.Equal(t, other)
}

// Without returns the tokens of t whose names are absent from other.
func (t TokenSet) Without(other TokenSet) TokenSet {
	out := TokenSet{}
	for k, v := range t {
		if _, ok := other[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Properties returns t keyed by custom property name.
func (t TokenSet) Properties() map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[Property(k)] = v
	}
	return out
}
