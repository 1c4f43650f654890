// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"fmt"
	"regexp"
	"strings"

	"inkwell/internal/models"
)

// StyleElementID identifies the single managed <style> element.
const StyleElementID = "universal-theme-css"

var classUnsafe = regexp.MustCompile(`[^a-z0-9_-]+`)

// ClassName makes a theme id safe for use as a class suffix.
func ClassName(id string) string {
	c := classUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(id)), "-")
	if c == "" {
		return models.BaselineThemeID
	}
	return c
}

// ThemeClass returns the body class for a theme.
func ThemeClass(id string) string {
	return "theme-" + ClassName(id)
}

// PageClass returns the body class for a page type.
func PageClass(page models.PageType) string {
	return "page-" + string(page)
}

// Generate produces the stylesheet for one theme and page type. Rules are
// scoped under ".theme-<id>.page-<page>" and reference tokens only through
// var(--theme-...), so re-resolving tokens restyles the page without
// regenerating this text.
func Generate(def models.ThemeDefinition, page models.PageType) string {
	def = def.WithDefaults()
	scope := "." + ThemeClass(def.ID) + "." + PageClass(page)

	var b sheet
	b.scope = scope
	b.comment(fmt.Sprintf("%s / %s", def.ID, page))
	writeBase(&b)

	switch page {
	case models.PageHome:
		writeHome(&b, def.Styles.Layout)
	case models.PagePost:
		writePost(&b)
	case models.PageArchive:
		writeArchive(&b, def.Styles.Layout)
	case models.PageCategory, models.PageTag:
		writeTaxonomy(&b, def.Styles.Layout)
	case models.PageAbout:
		writeAbout(&b)
	case models.PageContact:
		writeContact(&b)
	}
	return b.String()
}

// sheet accumulates scoped rules.
type sheet struct {
	strings.Builder
	scope string
}

func (s *sheet) comment(text string) {
	fmt.Fprintf(s, "/* %s */\n", text)
}

// rule writes one rule. An empty selector targets the scope element itself.
func (s *sheet) rule(selector string, decls ...string) {
	sel := s.scope
	if selector != "" {
		parts := strings.Split(selector, ",")
		for i, p := range parts {
			parts[i] = s.scope + " " + strings.TrimSpace(p)
		}
		sel = strings.Join(parts, ", ")
	}
	s.WriteString(sel)
	s.WriteString(" {\n")
	for _, d := range decls {
		s.WriteString("  ")
		s.WriteString(d)
		s.WriteString(";\n")
	}
	s.WriteString("}\n")
}

func decl(prop, token string) string {
	return prop + ": " + Var(token)
}

func writeBase(b *sheet) {
	b.rule("",
		decl("background-color", TokenSiteBg),
		decl("color", TokenSiteText),
		decl("font-family", TokenFontFamily),
	)
	b.rule("h1, h2, h3, h4, h5, h6",
		decl("font-family", TokenHeadingFont),
	)
	b.rule("a",
		decl("color", TokenPrimary),
	)
	b.rule("a:hover",
		decl("color", TokenPrimaryDark),
	)
	b.rule("code, pre, kbd",
		decl("font-family", TokenCodeFont),
	)
	b.rule(".site-header",
		decl("background-color", TokenHeaderBg),
		decl("color", TokenHeaderText),
		decl("box-shadow", TokenShadowSm),
		decl("padding", TokenSpacing),
	)
	b.rule(".site-footer",
		decl("background-color", TokenFooterBg),
		decl("color", TokenFooterText),
		decl("padding", TokenSpacing),
	)
	b.rule(".btn-primary",
		decl("background-color", TokenPrimary),
		decl("border-color", TokenPrimaryDark),
		decl("border-radius", TokenBorderRadius),
		decl("color", TokenHeaderText),
	)
	b.rule(".btn-primary:hover",
		decl("background-color", TokenPrimaryDark),
	)
	b.rule(".card",
		decl("background-color", TokenSecondary),
		decl("border-radius", TokenBorderRadius),
		decl("box-shadow", TokenShadowMd),
		decl("padding", TokenSpacing),
	)
	b.rule(".card:hover",
		decl("box-shadow", TokenShadowLg),
	)
	b.rule(".badge",
		decl("background-color", TokenAccentLight),
		decl("color", TokenAccentDark),
		decl("border-radius", TokenBorderRadius),
	)
}

// gridColumns is structural only, never a color or font.
func gridColumns(layout string) string {
	switch layout {
	case models.LayoutList, models.LayoutMinimal:
		return "grid-template-columns: 1fr"
	case models.LayoutMagazine:
		return "grid-template-columns: 2fr 1fr 1fr"
	default:
		return "grid-template-columns: repeat(auto-fill, minmax(18rem, 1fr))"
	}
}

func writeHome(b *sheet, layout string) {
	b.rule(".hero",
		"background-image: linear-gradient(135deg, "+Var(TokenPrimary)+", "+Var(TokenAccent)+")",
		decl("color", TokenHeaderText),
		decl("border-radius", TokenBorderRadius),
		"padding: calc("+Var(TokenSpacing)+" * 4) "+Var(TokenSpacing),
	)
	b.rule(".hero h1",
		decl("font-family", TokenHeadingFont),
		"font-size: clamp(2rem, 5vw, 3.5rem)",
	)
	b.rule(".post-grid",
		"display: grid",
		gridColumns(layout),
		decl("gap", TokenSpacing),
	)
	b.rule(".section-featured", decl("display", TokenSectionFeatured))
	b.rule(".section-recent", decl("display", TokenSectionRecent))
	b.rule(".section-trending", decl("display", TokenSectionTrending))
	b.rule(".section-categories", decl("display", TokenSectionCategories))
	b.rule(".section-newsletter",
		decl("display", TokenSectionNewsletter),
		decl("background-color", TokenPrimaryLight),
		decl("border-radius", TokenBorderRadius),
		decl("padding", TokenSpacing),
	)
}

func writePost(b *sheet) {
	b.rule(".prose",
		"max-width: 70ch",
		"line-height: 1.75",
		decl("color", TokenSiteText),
	)
	b.rule(".prose h2, .prose h3",
		decl("font-family", TokenHeadingFont),
		decl("margin-top", TokenSpacing),
	)
	b.rule(".prose blockquote",
		"border-left: 4px solid "+Var(TokenAccent),
		decl("background-color", TokenSecondary),
		"padding: "+Var(TokenSpacing),
		"font-style: italic",
	)
	b.rule(".prose pre",
		decl("background-color", TokenSecondaryDark),
		decl("border-radius", TokenBorderRadius),
		decl("padding", TokenSpacing),
		"overflow-x: auto",
	)
	b.rule(".prose img",
		decl("border-radius", TokenBorderRadius),
		decl("box-shadow", TokenShadowMd),
	)
	b.rule(".post-meta",
		decl("color", TokenPrimaryDark),
		"font-size: 0.875rem",
	)
}

func writeArchive(b *sheet, layout string) {
	b.rule(".archive-filters",
		"display: flex",
		"flex-wrap: wrap",
		decl("gap", TokenSpacing),
		decl("margin-bottom", TokenSpacing),
	)
	b.rule(".archive-filters button",
		decl("background-color", TokenSecondary),
		decl("color", TokenSiteText),
		decl("border-radius", TokenBorderRadius),
	)
	b.rule(".archive-filters button.active",
		decl("background-color", TokenPrimary),
		decl("color", TokenHeaderText),
	)
	b.rule(".archive-grid",
		"display: grid",
		gridColumns(layout),
		decl("gap", TokenSpacing),
	)
}

func writeTaxonomy(b *sheet, layout string) {
	b.rule(".taxonomy-header",
		decl("border-bottom-color", TokenAccent),
		"border-bottom-width: 3px",
		"border-bottom-style: solid",
		decl("padding-bottom", TokenSpacing),
	)
	b.rule(".taxonomy-header h1",
		decl("font-family", TokenHeadingFont),
		decl("color", TokenPrimary),
	)
	b.rule(".archive-grid",
		"display: grid",
		gridColumns(layout),
		decl("gap", TokenSpacing),
	)
}

func writeAbout(b *sheet) {
	b.rule(".about-hero",
		decl("background-color", TokenSecondary),
		decl("border-radius", TokenBorderRadius),
		"padding: calc("+Var(TokenSpacing)+" * 2)",
	)
	b.rule(".about-avatar",
		"border: 4px solid "+Var(TokenPrimary),
		"border-radius: 50%",
		decl("box-shadow", TokenShadowLg),
	)
}

func writeContact(b *sheet) {
	b.rule(".contact-form input, .contact-form textarea",
		"border: 1px solid "+Var(TokenSecondaryDark),
		decl("border-radius", TokenBorderRadius),
		decl("padding", TokenSpacing),
		decl("font-family", TokenFontFamily),
	)
	b.rule(".contact-form input:focus, .contact-form textarea:focus",
		"outline: 2px solid "+Var(TokenPrimaryLight),
		decl("border-color", TokenPrimary),
	)
	b.rule(".contact-form button",
		decl("background-color", TokenPrimary),
		decl("color", TokenHeaderText),
		decl("border-radius", TokenBorderRadius),
		decl("box-shadow", TokenShadowSm),
	)
}
