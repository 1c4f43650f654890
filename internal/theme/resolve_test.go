// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"strings"
	"testing"

	"inkwell/internal/models"
)

func blueTheme() models.ThemeDefinition {
	return models.ThemeDefinition{
		ID:   "ocean",
		Name: "Ocean",
		Styles: models.ThemeStyles{
			PrimaryColor:    "#2563eb",
			SecondaryColor:  "#f8fafc",
			AccentColor:     "#3b82f6",
			TextColor:       "#1f2937",
			BackgroundColor: "#ffffff",
			BodyFont:        "Inter",
			HeadingFont:     "Playfair Display",
			CodeFont:        "Fira Code",
			Layout:          models.LayoutGrid,
			Spacing:         models.SpacingRelaxed,
			BorderRadius:    "12px",
			Shadow:          models.ShadowSubtle,
		},
	}
}

func boolPtr(b bool) *bool { return &b }

func TestResolveBrandPrecedence(t *testing.T) {
	def := blueTheme()
	def.Styles.PrimaryColor = "#111111"

	tokens := Resolve(def, models.Customization{
		BrandColors: models.BrandColors{Primary: "#222222"},
	}, false)

	if got := tokens[TokenPrimary]; got != "#222222" {
		t.Errorf("primary = %q, want #222222", got)
	}
	// Slots without an override keep the theme value.
	if got := tokens[TokenSecondary]; got != "#f8fafc" {
		t.Errorf("secondary = %q, want #f8fafc", got)
	}
}

func TestResolveThemeDefaults(t *testing.T) {
	tokens := Resolve(blueTheme(), models.Customization{}, false)

	want := map[string]string{
		TokenPrimary:      "#2563eb",
		TokenSecondary:    "#f8fafc",
		TokenAccent:       "#3b82f6",
		TokenPrimaryLight: "#5896ff",
		TokenPrimaryDark:  "#0030b8",
		TokenSiteBg:       "#ffffff",
		TokenSiteText:     "#1f2937",
		TokenHeaderBg:     "#2563eb",
		TokenHeaderText:   "#ffffff",
		TokenFooterBg:     "#1f2937",
		TokenFooterText:   "#ffffff",
		TokenFontFamily:   "Inter, sans-serif",
		TokenHeadingFont:  `"Playfair Display", sans-serif`,
		TokenCodeFont:     `"Fira Code", monospace`,
		TokenBorderRadius: "12px",
		TokenSpacing:      "1.5rem",
		TokenShadowSm:     "0 1px 2px rgba(0, 0, 0, 0.04)",
	}
	for name, v := range want {
		if got := tokens[name]; got != v {
			t.Errorf("%s = %q, want %q", name, got, v)
		}
	}

	for name := range tokens {
		if strings.HasPrefix(name, "dark-") {
			t.Errorf("light resolution emitted dark token %q", name)
		}
	}
}

func TestResolveFontsCannotOpenComments(t *testing.T) {
	def := blueTheme()
	def.Styles.HeadingFont = "Serif */ body"
	tokens := Resolve(def, models.Customization{
		Fonts: models.Fonts{PrimaryFont: "Inter/*", CodeFont: "Mono/**/"},
	}, false)

	for _, name := range []string{TokenFontFamily, TokenHeadingFont, TokenCodeFont} {
		if strings.Contains(tokens[name], "/") {
			t.Errorf("%s = %q, must not contain a comment delimiter", name, tokens[name])
		}
	}
	if got := tokens[TokenFontFamily]; got != "Inter*, sans-serif" {
		t.Errorf("font-family = %q", got)
	}
}

func TestResolveFontsOverride(t *testing.T) {
	tokens := Resolve(blueTheme(), models.Customization{
		Fonts: models.Fonts{PrimaryFont: "Merriweather", CodeFont: "monospace, Courier"},
	}, false)

	if got := tokens[TokenFontFamily]; got != "Merriweather, sans-serif" {
		t.Errorf("font-family = %q", got)
	}
	if got := tokens[TokenCodeFont]; got != "monospace, Courier" {
		t.Errorf("code-font = %q, want the list unchanged", got)
	}
	if got := tokens[TokenHeadingFont]; got != `"Playfair Display", sans-serif` {
		t.Errorf("heading-font = %q, want theme value", got)
	}
}

func TestResolveDark(t *testing.T) {
	c := models.Customization{
		DarkMode: models.DarkModeConfig{
			Enabled: true,
			CustomDarkColors: models.DarkColors{
				Primary: "#60a5fa",
			},
		},
	}

	tokens := Resolve(blueTheme(), c, true)

	want := map[string]string{
		TokenDarkPrimary: "#60a5fa",
		TokenDarkBg:      "#0f0f0f",
		TokenDarkText:    "#ffffff",
		TokenDarkAccent:  "#3b82f6", // no custom or platform value: light resolution
		TokenPrimary:     "#60a5fa",
		TokenSiteBg:      "#0f0f0f",
		TokenSiteText:    "#ffffff",
	}
	for name, v := range want {
		if got := tokens[name]; got != v {
			t.Errorf("%s = %q, want %q", name, got, v)
		}
	}
}

func TestResolveShadowAndSpacingFallbacks(t *testing.T) {
	tests := []struct {
		shadow, spacing string
		wantSm, wantGap string
	}{
		{shadow: "none", spacing: "tight", wantSm: "none", wantGap: "0.75rem"},
		{shadow: "modern", spacing: "comfortable", wantSm: "0 1px 3px rgba(0, 0, 0, 0.1)", wantGap: "1rem"},
		{shadow: "holographic", spacing: "cozy", wantSm: "0 1px 3px rgba(0, 0, 0, 0.1)", wantGap: "1rem"},
	}
	for _, tt := range tests {
		t.Run(tt.shadow+"/"+tt.spacing, func(t *testing.T) {
			def := blueTheme()
			def.Styles.Shadow = tt.shadow
			def.Styles.Spacing = tt.spacing

			tokens := Resolve(def, models.Customization{}, false)
			if got := tokens[TokenShadowSm]; got != tt.wantSm {
				t.Errorf("shadow-sm = %q, want %q", got, tt.wantSm)
			}
			if tt.shadow == "none" {
				if tokens[TokenShadowMd] != "none" || tokens[TokenShadowLg] != "none" {
					t.Errorf("none shadow style should map every size to none: %v", tokens)
				}
			}
			if got := tokens[TokenSpacing]; got != tt.wantGap {
				t.Errorf("spacing = %q, want %q", got, tt.wantGap)
			}
		})
	}
}

func TestResolveIsTotal(t *testing.T) {
	// An empty theme and garbage overrides still produce every token.
	tokens := Resolve(models.ThemeDefinition{}, models.Customization{
		BrandColors: models.BrandColors{Primary: "blue", HeaderBg: "#12"},
	}, false)

	baseline := Resolve(models.BaselineTheme(), models.Customization{}, false)
	if !tokens.Equal(baseline) {
		t.Errorf("empty theme should resolve like the baseline theme\n got: %v\nwant: %v", tokens, baseline)
	}
	if tokens[TokenBorderRadius] != "0.5rem" {
		t.Errorf("border-radius = %q, want baseline", tokens[TokenBorderRadius])
	}
}

func TestResolveRejectsUnsafeBorderRadius(t *testing.T) {
	def := blueTheme()
	def.Styles.BorderRadius = "1px; } body { display:none"
	tokens := Resolve(def, models.Customization{}, false)
	if got := tokens[TokenBorderRadius]; got != "0.5rem" {
		t.Errorf("border-radius = %q, want fallback", got)
	}
}

func TestResolveHomepageSections(t *testing.T) {
	tokens := Resolve(blueTheme(), models.Customization{
		HomepageSettings: models.HomepageSettings{
			ShowTrending:   boolPtr(false),
			ShowNewsletter: boolPtr(true),
		},
	}, false)

	if got := tokens[TokenSectionTrending]; got != "none" {
		t.Errorf("section-trending = %q, want none", got)
	}
	if got := tokens[TokenSectionNewsletter]; got != "block" {
		t.Errorf("section-newsletter = %q, want block", got)
	}
	if got := tokens[TokenSectionFeatured]; got != "block" {
		t.Errorf("section-featured = %q, want block by default", got)
	}
}

func TestGoogleFontsURL(t *testing.T) {
	c := models.Customization{Fonts: models.Fonts{FontSource: models.FontSourceGoogle, PrimaryFont: "Open Sans"}}
	got := GoogleFontsURL(blueTheme(), c)

	for _, want := range []string{
		"https://fonts.googleapis.com/css2?",
		"family=Open+Sans:wght@400;600;700",
		"family=Playfair+Display:wght@400;600;700",
		"family=Fira+Code:wght@400;600;700",
		"display=swap",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GoogleFontsURL = %q, want it to contain %q", got, want)
		}
	}

	if got := GoogleFontsURL(blueTheme(), models.Customization{}); got != "" {
		t.Errorf("system fonts should not produce a URL, got %q", got)
	}
}
