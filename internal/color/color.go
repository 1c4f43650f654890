// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package color derives color variants from 6-digit RGB hex strings.
// Every function is total: malformed input is clamped rather than rejected
// so the styling pipeline never fails on a bad tenant value.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Text colors offered by ReadableText.
const (
	black = "#000000"
	white = "#ffffff"
)

var hexColorRegex = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// IsHex reports whether value is a 6-digit hex color, with or without "#".
func IsHex(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Normalize returns value as a lowercase "#rrggbb" string. It returns an
// error if value is not a 6-digit hex color.
func Normalize(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !hexColorRegex.MatchString(trimmed) {
		return "", fmt.Errorf("invalid hex color: %q", value)
	}
	return "#" + strings.ToLower(strings.TrimPrefix(trimmed, "#")), nil
}

// Lighten shifts every channel of hex toward 255 by round(2.55*percent).
func Lighten(hex string, percent float64) string {
	return shift(hex, amount(percent))
}

// Darken shifts every channel of hex toward 0 by round(2.55*percent).
func Darken(hex string, percent float64) string {
	return shift(hex, -amount(percent))
}

// ReadableText picks black or white, whichever contrasts more with bg.
// Unparseable backgrounds get white text.
func ReadableText(bg string) string {
	normalized, err := Normalize(bg)
	if err != nil {
		return white
	}
	c, err := colorful.Hex(normalized)
	if err != nil {
		return white
	}
	r, g, b := c.LinearRgb()
	l := 0.2126*r + 0.7152*g + 0.0722*b

	againstBlack := (l + 0.05) / 0.05
	againstWhite := 1.05 / (l + 0.05)
	if againstBlack >= againstWhite {
		return black
	}
	return white
}

func amount(percent float64) int {
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return int(math.Round(percent * 255 / 100))
}

func shift(hex string, delta int) string {
	r, g, b := channels(hex)
	return fmt.Sprintf("#%02x%02x%02x", clamp(r+delta), clamp(g+delta), clamp(b+delta))
}

// channels parses up to three 2-digit channels. Missing or invalid digits
// read as 0.
func channels(hex string) (int, int, int) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	var out [3]int
	for i := range out {
		start := i * 2
		if start >= len(s) {
			break
		}
		end := min(start+2, len(s))
		v, err := strconv.ParseUint(s[start:end], 16, 8)
		if err != nil {
			continue
		}
		out[i] = int(v)
	}
	return out[0], out[1], out[2]
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
