// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"net/url"
	"strings"

	"inkwell/internal/models"
)

const googleFontsBase = "https://fonts.googleapis.com/css2"

// unsafeFontChars strips characters that could end a declaration or open a
// comment.
var unsafeFontChars = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "", "\\", "", "/", "")

// fontChoice is the resolved family name for each typography slot, before
// fallback stacks are appended.
type fontChoice struct {
	body, heading, code string
}

func resolveFonts(def models.ThemeDefinition, c models.Customization) fontChoice {
	s := def.Styles
	return fontChoice{
		body:    pick(c.Fonts.PrimaryFont, s.BodyFont),
		heading: pick(c.Fonts.HeadingFont, s.HeadingFont),
		code:    pick(c.Fonts.CodeFont, s.CodeFont),
	}
}

// fontStack quotes a family name and appends a generic fallback. Values that
// already contain a list are used as given.
func fontStack(family, generic string) string {
	family = strings.TrimSpace(unsafeFontChars.Replace(family))
	if family == "" {
		return generic
	}
	if strings.Contains(family, ",") {
		return family
	}
	if strings.ContainsAny(family, " ") && !strings.HasPrefix(family, `"`) {
		family = `"` + strings.ReplaceAll(family, `"`, "") + `"`
	}
	return family + ", " + generic
}

// GoogleFontsURL returns the stylesheet URL that loads the blog's fonts from
// Google Fonts, or "" when the blog uses system fonts.
func GoogleFontsURL(def models.ThemeDefinition, c models.Customization) string {
	if c.Fonts.FontSource != models.FontSourceGoogle {
		return ""
	}
	fonts := resolveFonts(def.WithDefaults(), c)

	seen := map[string]bool{}
	var families []string
	for _, f := range []string{fonts.body, fonts.heading, fonts.code} {
		f = strings.Trim(strings.TrimSpace(f), `"`)
		if f == "" || strings.Contains(f, ",") || seen[f] {
			continue
		}
		seen[f] = true
		families = append(families, "family="+strings.ReplaceAll(url.QueryEscape(f), "%20", "+")+":wght@400;600;700")
	}
	if len(families) == 0 {
		return ""
	}
	return googleFontsBase + "?" + strings.Join(families, "&") + "&display=swap"
}
