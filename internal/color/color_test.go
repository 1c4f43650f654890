// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package color

import (
	"strconv"
	"testing"
)

func rgb(t *testing.T, hex string) [3]int {
	t.Helper()
	if len(hex) != 7 || hex[0] != '#' {
		t.Fatalf("not a #rrggbb color: %q", hex)
	}
	var out [3]int
	for i := range out {
		v, err := strconv.ParseUint(hex[1+i*2:3+i*2], 16, 8)
		if err != nil {
			t.Fatalf("parse %q: %v", hex, err)
		}
		out[i] = int(v)
	}
	return out
}

func TestLighten(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		percent float64
		want    string
	}{
		{name: "zero percent", hex: "#2563eb", percent: 0, want: "#2563eb"},
		{name: "twenty percent", hex: "#2563eb", percent: 20, want: "#5896ff"},
		{name: "without hash", hex: "2563eb", percent: 20, want: "#5896ff"},
		{name: "clamps at white", hex: "#f0f0f0", percent: 50, want: "#ffffff"},
		{name: "full percent", hex: "#000000", percent: 100, want: "#ffffff"},
		{name: "percent above range", hex: "#000000", percent: 250, want: "#ffffff"},
		{name: "negative percent", hex: "#101010", percent: -10, want: "#101010"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lighten(tt.hex, tt.percent); got != tt.want {
				t.Errorf("Lighten(%q, %v) = %q, want %q", tt.hex, tt.percent, got, tt.want)
			}
		})
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		percent float64
		want    string
	}{
		{name: "twenty percent", hex: "#2563eb", percent: 20, want: "#0030b8"},
		{name: "clamps at black", hex: "#101010", percent: 50, want: "#000000"},
		{name: "uppercase input", hex: "#FFFFFF", percent: 10, want: "#e5e5e5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Darken(tt.hex, tt.percent); got != tt.want {
				t.Errorf("Darken(%q, %v) = %q, want %q", tt.hex, tt.percent, got, tt.want)
			}
		})
	}
}

// TestLightenDarkenMonotonic checks that every channel moves in the right
// direction and stays within [0,255] across a grid of colors and percents.
func TestLightenDarkenMonotonic(t *testing.T) {
	colors := []string{"#000000", "#ffffff", "#2563eb", "#f8fafc", "#3b82f6", "#7f7f7f", "#ff0001"}
	for _, c := range colors {
		base := rgb(t, c)
		for p := 0.0; p <= 100; p += 12.5 {
			light := rgb(t, Lighten(c, p))
			dark := rgb(t, Darken(c, p))
			for i := range base {
				if light[i] < base[i] || light[i] > 255 {
					t.Errorf("Lighten(%s, %v) channel %d = %d, base %d", c, p, i, light[i], base[i])
				}
				if dark[i] > base[i] || dark[i] < 0 {
					t.Errorf("Darken(%s, %v) channel %d = %d, base %d", c, p, i, dark[i], base[i])
				}
			}
		}
	}
}

func TestMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{"", "#", "#abc", "zzzzzz", "#12", "#1234567890", "   "}
	for _, in := range inputs {
		t.Run(strconv.Quote(in), func(t *testing.T) {
			got := Lighten(in, 20)
			if len(got) != 7 || got[0] != '#' {
				t.Errorf("Lighten(%q) = %q, want a #rrggbb string", in, got)
			}
			got = Darken(in, 20)
			if len(got) != 7 || got[0] != '#' {
				t.Errorf("Darken(%q) = %q, want a #rrggbb string", in, got)
			}
		})
	}

	// Missing channels read as zero.
	if got := Lighten("#ff", 0); got != "#ff0000" {
		t.Errorf("Lighten(#ff, 0) = %q, want #ff0000", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#AABBCC", want: "#aabbcc"},
		{in: "aabbcc", want: "#aabbcc"},
		{in: "  #aabbcc ", want: "#aabbcc"},
		{in: "#abc", wantErr: true},
		{in: "#aabbcg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q) expected error, got %q", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !IsHex(tt.in) {
				t.Errorf("IsHex(%q) = false, want true", tt.in)
			}
		})
	}
}

func TestReadableText(t *testing.T) {
	tests := []struct {
		bg   string
		want string
	}{
		{bg: "#ffffff", want: "#000000"},
		{bg: "#f8fafc", want: "#000000"},
		{bg: "#000000", want: "#ffffff"},
		{bg: "#1f2937", want: "#ffffff"},
		{bg: "not-a-color", want: "#ffffff"},
	}
	for _, tt := range tests {
		if got := ReadableText(tt.bg); got != tt.want {
			t.Errorf("ReadableText(%q) = %q, want %q", tt.bg, got, tt.want)
		}
	}
}
