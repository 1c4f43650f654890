// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// PageType is the category of the page being viewed. Generated stylesheets
// are scoped per page type.
type PageType string

// Supported page types.
const (
	PageHome     PageType = "home"
	PagePost     PageType = "post"
	PageArchive  PageType = "archive"
	PageAbout    PageType = "about"
	PageContact  PageType = "contact"
	PageCategory PageType = "category"
	PageTag      PageType = "tag"
)

// PageTypes lists every page type in display order.
var PageTypes = []PageType{PageHome, PagePost, PageArchive, PageAbout, PageContact, PageCategory, PageTag}

// ParsePageType validates a page type string. An empty string is home.
func ParsePageType(s string) (PageType, error) {
	if s == "" {
		return PageHome, nil
	}
	for _, p := range PageTypes {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page type %q", s)
}

// ColorMode is a stored light/dark choice.
type ColorMode string

// Color modes.
const (
	ModeLight  ColorMode = "light"
	ModeDark   ColorMode = "dark"
	ModeSystem ColorMode = "system"
)

// Valid reports whether m is one of the known modes.
func (m ColorMode) Valid() bool {
	switch m {
	case ModeLight, ModeDark, ModeSystem:
		return true
	}
	return false
}
