// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "inkwell/internal/models"

// shadowScale holds the sm/md/lg box-shadow values for one shadow style.
type shadowScale struct {
	sm, md, lg string
}

var shadowTable = map[string]shadowScale{
	models.ShadowNone: {"none", "none", "none"},
	models.ShadowSubtle: {
		"0 1px 2px rgba(0, 0, 0, 0.04)",
		"0 2px 4px rgba(0, 0, 0, 0.06)",
		"0 4px 8px rgba(0, 0, 0, 0.08)",
	},
	models.ShadowModern: {
		"0 1px 3px rgba(0, 0, 0, 0.1)",
		"0 4px 6px -1px rgba(0, 0, 0, 0.1)",
		"0 10px 15px -3px rgba(0, 0, 0, 0.1)",
	},
	models.ShadowDramatic: {
		"0 2px 4px rgba(0, 0, 0, 0.2)",
		"0 8px 16px rgba(0, 0, 0, 0.25)",
		"0 20px 40px rgba(0, 0, 0, 0.3)",
	},
	models.ShadowGlassmorphism: {
		"0 2px 8px rgba(31, 38, 135, 0.1)",
		"0 8px 32px rgba(31, 38, 135, 0.15)",
		"0 16px 48px rgba(31, 38, 135, 0.2)",
	},
	models.ShadowNeon: {
		"0 0 4px rgba(0, 255, 255, 0.4)",
		"0 0 10px rgba(0, 255, 255, 0.5)",
		"0 0 20px rgba(0, 255, 255, 0.6)",
	},
}

// shadowsFor falls back to the modern table for unknown styles.
func shadowsFor(style string) shadowScale {
	if s, ok := shadowTable[style]; ok {
		return s
	}
	return shadowTable[models.ShadowModern]
}

var spacingTable = map[string]string{
	models.SpacingTight:       "0.75rem",
	models.SpacingComfortable: "1rem",
	models.SpacingRelaxed:     "1.5rem",
}

func spacingFor(class string) string {
	if v, ok := spacingTable[class]; ok {
		return v
	}
	return spacingTable[models.SpacingComfortable]
}

// Platform dark palette. Primary and accent have no platform default and
// fall back to the light resolution.
const (
	defaultDarkBg        = "#0f0f0f"
	defaultDarkText      = "#ffffff"
	defaultDarkSecondary = "#1f1f1f"
)

// derivePercent is how far the -light and -dark variants move.
const derivePercent = 20
