// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"regexp"
	"strings"

	"inkwell/internal/color"
	"inkwell/internal/models"
)

// Resolve merges a theme definition with a tenant's customization into a
// concrete token set. Tenant values win over theme values; anything missing
// from both falls back to the baseline theme. When dark is true the dark
// palette replaces the current colors and the dark-* tokens are emitted.
//
// Resolve never fails.
func Resolve(def models.ThemeDefinition, c models.Customization, dark bool) TokenSet {
	def = def.WithDefaults()
	s := def.Styles
	base := models.BaselineTheme().Styles
	b := c.BrandColors

	themePrimary := colorOr(s.PrimaryColor, base.PrimaryColor)
	themeSecondary := colorOr(s.SecondaryColor, base.SecondaryColor)
	themeAccent := colorOr(s.AccentColor, base.AccentColor)
	themeText := colorOr(s.TextColor, base.TextColor)
	themeBg := colorOr(s.BackgroundColor, base.BackgroundColor)

	primary := colorOr(b.Primary, themePrimary)
	secondary := colorOr(b.Secondary, themeSecondary)
	accent := colorOr(b.Accent, themeAccent)
	siteBg := colorOr(b.SiteBg, themeBg)
	siteText := colorOr(b.SiteText, themeText)

	tokens := TokenSet{}

	if dark {
		dc := c.DarkMode.CustomDarkColors
		primary = colorOr(dc.Primary, primary)
		secondary = colorOr(dc.Secondary, defaultDarkSecondary)
		accent = colorOr(dc.Accent, accent)
		siteBg = colorOr(dc.Background, defaultDarkBg)
		siteText = colorOr(dc.Text, defaultDarkText)

		tokens[TokenDarkPrimary] = primary
		tokens[TokenDarkSecondary] = secondary
		tokens[TokenDarkAccent] = accent
		tokens[TokenDarkBg] = siteBg
		tokens[TokenDarkText] = siteText
	}

	headerBg := colorOr(b.HeaderBg, primary)
	headerText := colorOr(b.HeaderText, color.ReadableText(headerBg))
	footerBg := colorOr(b.FooterBg, themeText)
	footerText := colorOr(b.FooterText, color.ReadableText(footerBg))

	tokens[TokenPrimary] = primary
	tokens[TokenSecondary] = secondary
	tokens[TokenAccent] = accent
	tokens[TokenPrimaryLight] = color.Lighten(primary, derivePercent)
	tokens[TokenPrimaryDark] = color.Darken(primary, derivePercent)
	tokens[TokenSecondaryLight] = color.Lighten(secondary, derivePercent)
	tokens[TokenSecondaryDark] = color.Darken(secondary, derivePercent)
	tokens[TokenAccentLight] = color.Lighten(accent, derivePercent)
	tokens[TokenAccentDark] = color.Darken(accent, derivePercent)

	tokens[TokenHeaderBg] = headerBg
	tokens[TokenHeaderText] = headerText
	tokens[TokenFooterBg] = footerBg
	tokens[TokenFooterText] = footerText
	tokens[TokenSiteBg] = siteBg
	tokens[TokenSiteText] = siteText

	fonts := resolveFonts(def, c)
	tokens[TokenFontFamily] = fontStack(fonts.body, "sans-serif")
	tokens[TokenHeadingFont] = fontStack(fonts.heading, "sans-serif")
	tokens[TokenCodeFont] = fontStack(fonts.code, "monospace")

	tokens[TokenBorderRadius] = lengthOr(s.BorderRadius, base.BorderRadius)
	tokens[TokenSpacing] = spacingFor(s.Spacing)
	shadows := shadowsFor(s.Shadow)
	tokens[TokenShadowSm] = shadows.sm
	tokens[TokenShadowMd] = shadows.md
	tokens[TokenShadowLg] = shadows.lg

	h := c.HomepageSettings
	tokens[TokenSectionFeatured] = display(h.ShowFeatured)
	tokens[TokenSectionRecent] = display(h.ShowRecent)
	tokens[TokenSectionTrending] = display(h.ShowTrending)
	tokens[TokenSectionCategories] = display(h.ShowCategories)
	tokens[TokenSectionNewsletter] = display(h.ShowNewsletter)

	return tokens
}

var cssLength = regexp.MustCompile(`^[0-9]*\.?[0-9]+(px|rem|em|%)?$`)

// colorOr returns value normalized when it is a valid hex color, otherwise
// fallback.
func colorOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	normalized, err := color.Normalize(value)
	if err != nil {
		return fallback
	}
	return normalized
}

// lengthOr accepts simple CSS lengths such as "8px", "0.5rem" or "0".
func lengthOr(value, fallback string) string {
	v := strings.TrimSpace(value)
	if v == "" || !cssLength.MatchString(v) {
		return fallback
	}
	return v
}

func pick(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func display(show *bool) string {
	if show != nil && !*show {
		return "none"
	}
	return "block"
}
