package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"inkwell/internal/color"
	"inkwell/internal/models"
)

// Validation limits for customization fields.
const (
	maxFontNameLen  = 100
	maxHeroStyleLen = 50
	maxURLLen       = 2_000
)

// field is one named input, checked in declaration order so the first
// problem reported is stable.
type field struct {
	name, value string
}

// validateCustomization checks a tenant customization and returns the first
// problem found, or "".
func validateCustomization(c models.Customization) string {
	if msg := validateBrandColors(c.BrandColors); msg != "" {
		return msg
	}

	dc := c.DarkMode.CustomDarkColors
	if msg := validateHexColors([]field{
		{"darkMode.customDarkColors.primary", dc.Primary},
		{"darkMode.customDarkColors.secondary", dc.Secondary},
		{"darkMode.customDarkColors.accent", dc.Accent},
		{"darkMode.customDarkColors.background", dc.Background},
		{"darkMode.customDarkColors.text", dc.Text},
	}); msg != "" {
		return msg
	}
	if m := c.DarkMode.DefaultMode; m != "" && !m.Valid() {
		return "darkMode.defaultMode must be light, dark or system."
	}

	f := c.Fonts
	for _, fd := range []field{
		{"fonts.primaryFont", f.PrimaryFont},
		{"fonts.headingFont", f.HeadingFont},
		{"fonts.codeFont", f.CodeFont},
	} {
		if utf8.RuneCountInString(fd.value) > maxFontNameLen {
			return fd.name + " is too long (max 100 characters)."
		}
		// "/" is rejected so a name cannot open or close a CSS comment.
		if strings.ContainsAny(fd.value, ";{}<>/\\\"") {
			return fd.name + " contains invalid characters."
		}
	}
	switch f.FontSource {
	case "", models.FontSourceSystem, models.FontSourceGoogle:
	default:
		return "fonts.fontSource must be system or google."
	}

	if utf8.RuneCountInString(c.HomepageSettings.HeroStyle) > maxHeroStyleLen {
		return "homepageSettings.heroStyle is too long (max 50 characters)."
	}

	s := c.SocialMedia
	b := c.Branding
	for _, fd := range []field{
		{"socialMedia.twitter", s.Twitter},
		{"socialMedia.facebook", s.Facebook},
		{"socialMedia.instagram", s.Instagram},
		{"socialMedia.linkedin", s.LinkedIn},
		{"socialMedia.github", s.GitHub},
		{"branding.logoUrl", b.LogoURL},
		{"branding.faviconUrl", b.FaviconURL},
	} {
		if msg := validateURL(fd.name, fd.value); msg != "" {
			return msg
		}
	}
	return ""
}

// validateBrandColors checks that every set brand color is a hex color.
func validateBrandColors(b models.BrandColors) string {
	return validateHexColors([]field{
		{"brandColors.primary", b.Primary},
		{"brandColors.secondary", b.Secondary},
		{"brandColors.accent", b.Accent},
		{"brandColors.headerBg", b.HeaderBg},
		{"brandColors.headerText", b.HeaderText},
		{"brandColors.footerBg", b.FooterBg},
		{"brandColors.footerText", b.FooterText},
		{"brandColors.siteBg", b.SiteBg},
		{"brandColors.siteText", b.SiteText},
	})
}

func validateHexColors(fields []field) string {
	for _, fd := range fields {
		if fd.value != "" && !color.IsHex(fd.value) {
			return fd.name + " must be a 6-digit hex color."
		}
	}
	return ""
}

// validateURL accepts empty values and absolute http(s) URLs.
func validateURL(name, value string) string {
	if value == "" {
		return ""
	}
	if len(value) > maxURLLen {
		return name + " is too long (max 2,000 characters)."
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return name + " must be an absolute http or https URL."
	}
	return ""
}
