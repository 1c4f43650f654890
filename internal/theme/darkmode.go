// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "inkwell/internal/models"

// DarkMode computes the effective light/dark state for one styling scope.
// Inputs in precedence order: a per-session override, the visitor's
// persisted mode, the tenant's default mode. A mode of "system" follows the
// OS color scheme. A tenant with dark mode disabled is always light.
//
// DarkMode is not safe for concurrent use; its owner serialises access.
// Every setter reports whether the effective state changed.
type DarkMode struct {
	config    models.DarkModeConfig
	persisted models.ColorMode
	override  *bool
	osDark    bool
}

// NewDarkMode creates a controller from the tenant config, the visitor's
// persisted mode ("" when none) and the current OS scheme.
func NewDarkMode(cfg models.DarkModeConfig, persisted models.ColorMode, osDark bool) *DarkMode {
	return &DarkMode{config: cfg, persisted: persisted, osDark: osDark}
}

// Mode returns the configured mode that currently applies, ignoring any
// session override.
func (d *DarkMode) Mode() models.ColorMode {
	if d.persisted.Valid() {
		return d.persisted
	}
	if d.config.DefaultMode.Valid() {
		return d.config.DefaultMode
	}
	return models.ModeLight
}

// Enabled reports whether the tenant offers dark mode at all.
func (d *DarkMode) Enabled() bool {
	return d.config.Enabled
}

// Effective returns true when the dark palette applies.
func (d *DarkMode) Effective() bool {
	if !d.config.Enabled {
		return false
	}
	if d.override != nil {
		return *d.override
	}
	switch d.Mode() {
	case models.ModeDark:
		return true
	case models.ModeSystem:
		return d.osDark
	default:
		return false
	}
}

// TracksSystem reports whether the effective state follows the OS scheme.
func (d *DarkMode) TracksSystem() bool {
	return d.config.Enabled && d.override == nil && d.Mode() == models.ModeSystem
}

// Toggle flips the effective state for this session only.
func (d *DarkMode) Toggle() bool {
	if !d.config.Enabled {
		return false
	}
	next := !d.Effective()
	d.override = &next
	return true
}

// SetPersisted records the visitor's stored mode and drops any session
// override.
func (d *DarkMode) SetPersisted(mode models.ColorMode) bool {
	return d.change(func() {
		d.persisted = mode
		d.override = nil
	})
}

// SetOSDark records an OS color-scheme change.
func (d *DarkMode) SetOSDark(dark bool) bool {
	return d.change(func() { d.osDark = dark })
}

// SetConfig replaces the tenant config after a blog update.
func (d *DarkMode) SetConfig(cfg models.DarkModeConfig) bool {
	return d.change(func() { d.config = cfg })
}

func (d *DarkMode) change(fn func()) bool {
	before := d.Effective()
	fn()
	return before != d.Effective()
}
