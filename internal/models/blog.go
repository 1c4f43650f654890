// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a tenant. Only the fields the styling engine needs are modelled;
// posts and owners live elsewhere.
type Blog struct {
	ID            uuid.UUID     `json:"id"`
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	ThemeID       string        `json:"themeId"`
	Version       int           `json:"version"`
	Customization Customization `json:"customization"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Font sources.
const (
	FontSourceSystem = "system"
	FontSourceGoogle = "google"
)

// Customization holds the tenant overrides layered on a theme. Every field is
// optional; an empty value means "use the theme's value".
type Customization struct {
	BrandColors      BrandColors      `json:"brandColors"`
	Fonts            Fonts            `json:"fonts"`
	DarkMode         DarkModeConfig   `json:"darkMode"`
	HomepageSettings HomepageSettings `json:"homepageSettings"`
	SocialMedia      SocialMedia      `json:"socialMedia"`
	Branding         Branding         `json:"branding"`
}

// BrandColors are tenant color overrides.
type BrandColors struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	HeaderBg   string `json:"headerBg,omitempty"`
	HeaderText string `json:"headerText,omitempty"`
	FooterBg   string `json:"footerBg,omitempty"`
	FooterText string `json:"footerText,omitempty"`
	SiteBg     string `json:"siteBg,omitempty"`
	SiteText   string `json:"siteText,omitempty"`
}

// Merge returns b with every non-empty field of over applied on top.
func (b BrandColors) Merge(over BrandColors) BrandColors {
	pick := func(base, o string) string {
		if o != "" {
			return o
		}
		return base
	}
	return BrandColors{
		Primary:    pick(b.Primary, over.Primary),
		Secondary:  pick(b.Secondary, over.Secondary),
		Accent:     pick(b.Accent, over.Accent),
		HeaderBg:   pick(b.HeaderBg, over.HeaderBg),
		HeaderText: pick(b.HeaderText, over.HeaderText),
		FooterBg:   pick(b.FooterBg, over.FooterBg),
		FooterText: pick(b.FooterText, over.FooterText),
		SiteBg:     pick(b.SiteBg, over.SiteBg),
		SiteText:   pick(b.SiteText, over.SiteText),
	}
}

// Fonts are tenant typography overrides.
type Fonts struct {
	PrimaryFont string `json:"primaryFont,omitempty"`
	HeadingFont string `json:"headingFont,omitempty"`
	CodeFont    string `json:"codeFont,omitempty"`
	FontSource  string `json:"fontSource,omitempty"`
}

// DarkModeConfig controls whether and how a blog offers a dark palette.
type DarkModeConfig struct {
	Enabled          bool       `json:"enabled"`
	DefaultMode      ColorMode  `json:"defaultMode,omitempty"`
	CustomDarkColors DarkColors `json:"customDarkColors"`
}

// DarkColors overrides the platform dark palette.
type DarkColors struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// HomepageSettings toggles homepage sections. A nil toggle means shown.
type HomepageSettings struct {
	ShowFeatured   *bool  `json:"showFeatured,omitempty"`
	ShowRecent     *bool  `json:"showRecent,omitempty"`
	ShowTrending   *bool  `json:"showTrending,omitempty"`
	ShowCategories *bool  `json:"showCategories,omitempty"`
	ShowNewsletter *bool  `json:"showNewsletter,omitempty"`
	HeroStyle      string `json:"heroStyle,omitempty"`
}

// SocialMedia is carried for presentation components only.
type SocialMedia struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
}

// Branding is carried for presentation components only.
type Branding struct {
	LogoURL     string `json:"logoUrl,omitempty"`
	FaviconURL  string `json:"faviconUrl,omitempty"`
	UseGravatar bool   `json:"useGravatar,omitempty"`
}
