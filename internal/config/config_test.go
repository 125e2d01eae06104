package config

import (
	"testing"
)

// TestParseHexColor_ValidInputs verifies that ParseHexColor correctly parses
// hex colours with and without the leading hash, in any letter case.
func TestParseHexColor_ValidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		wantR uint8
		wantG uint8
		wantB uint8
	}{
		{name: "FF0000 (uppercase red, no hash)", input: "FF0000", wantR: 255},
		{name: "ff0000 (lowercase red, no hash)", input: "ff0000", wantR: 255},
		{name: "#FF0000 (uppercase red, with hash)", input: "#FF0000", wantR: 255},
		{name: "Ff00fF (mixed case magenta)", input: "Ff00fF", wantR: 255, wantB: 255},
		{name: "00FF00 (green)", input: "00FF00", wantG: 255},
		{name: "#000000 (black)", input: "#000000"},
		{name: "#F8B31D (brand yellow)", input: "#F8B31D", wantR: 248, wantG: 179, wantB: 29},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}

			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.input, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

// TestParseHexColor_InvalidInputs verifies that ParseHexColor rejects
// malformed input instead of silently producing a colour.
func TestParseHexColor_InvalidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "FFF (too short)", input: "FFF"},
		{name: "#FFF (too short with hash)", input: "#FFF"},
		{name: "FFFFFFF (too long)", input: "FFFFFFF"},
		{name: "GGGGGG (invalid hex)", input: "GGGGGG"},
		{name: "FF00GG (mixed valid/invalid)", input: "FF00GG"},
		{name: "Empty string", input: ""},
		{name: "# (just hash)", input: "#"},
		{name: "FF 000 (spaces)", input: "FF 000"},
		{name: "FF#000 (hash in middle)", input: "FF#000"},
		{name: "##FF0000 (double hash)", input: "##FF0000"},
		{name: "FF0000\\n (with newline)", input: "FF0000\n"},
		{name: "+FFFFF (sign prefix)", input: "+FFFFF"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := ParseHexColor(tc.input); err == nil {
				t.Errorf("ParseHexColor(%q) expected error, got nil", tc.input)
			}
		})
	}
}

// TestParseHexColor_ByteOrder verifies correct byte ordering (R, G, B).
// This catches swaps like (B, G, R) or (G, R, B).
func TestParseHexColor_ByteOrder(t *testing.T) {
	testCases := []struct {
		input               string
		wantR, wantG, wantB uint8
	}{
		{input: "010203", wantR: 1, wantG: 2, wantB: 3},
		{input: "AABBCC", wantR: 0xAA, wantG: 0xBB, wantB: 0xCC},
		{input: "DDEEFF", wantR: 0xDD, wantG: 0xEE, wantB: 0xFF},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}

			if r != tc.wantR {
				t.Errorf("Red channel: got %d (0x%02X), want %d (0x%02X)", r, r, tc.wantR, tc.wantR)
			}
			if g != tc.wantG {
				t.Errorf("Green channel: got %d (0x%02X), want %d (0x%02X)", g, g, tc.wantG, tc.wantG)
			}
			if b != tc.wantB {
				t.Errorf("Blue channel: got %d (0x%02X), want %d (0x%02X)", b, b, tc.wantB, tc.wantB)
			}
		})
	}
}

// TestRuntimeConfig_GetBarColor verifies that GetBarColor only applies an
// override once every channel is set.
func TestRuntimeConfig_GetBarColor(t *testing.T) {
	testCases := []struct {
		name   string
		config *RuntimeConfig
		wantR  uint8
		wantG  uint8
		wantB  uint8
	}{
		{
			name:   "Nil config fields (use defaults)",
			config: &RuntimeConfig{},
			wantR:  BarColorR,
			wantG:  BarColorG,
			wantB:  BarColorB,
		},
		{
			name:   "Custom R only",
			config: &RuntimeConfig{BarColorR: ptrUint8(100)},
			wantR:  BarColorR,
			wantG:  BarColorG,
			wantB:  BarColorB,
		},
		{
			name: "All custom values",
			config: &RuntimeConfig{
				BarColorR: ptrUint8(255),
				BarColorG: ptrUint8(128),
				BarColorB: ptrUint8(64),
			},
			wantR: 255,
			wantG: 128,
			wantB: 64,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := tc.config.GetBarColor()
			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("GetBarColor() = (%d, %d, %d), want (%d, %d, %d)",
					r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

// TestRuntimeConfig_NilReceiver verifies that a nil config falls back to the
// defaults rather than panicking during rendering.
func TestRuntimeConfig_NilReceiver(t *testing.T) {
	var c *RuntimeConfig

	r, g, b := c.GetBarColor()
	if r != BarColorR || g != BarColorG || b != BarColorB {
		t.Errorf("GetBarColor() = (%d, %d, %d), want defaults", r, g, b)
	}

	r, g, b = c.GetTextColor()
	if r != TextColorR || g != TextColorG || b != TextColorB {
		t.Errorf("GetTextColor() = (%d, %d, %d), want defaults", r, g, b)
	}
}

func TestRuntimeConfig_SetColors(t *testing.T) {
	c := &RuntimeConfig{}

	if err := c.SetBarColor("#102030"); err != nil {
		t.Fatalf("SetBarColor returned error: %v", err)
	}
	if err := c.SetTextColor("405060"); err != nil {
		t.Fatalf("SetTextColor returned error: %v", err)
	}

	if r, g, b := c.GetBarColor(); r != 0x10 || g != 0x20 || b != 0x30 {
		t.Errorf("GetBarColor() = (%d, %d, %d), want (16, 32, 48)", r, g, b)
	}
	if r, g, b := c.GetTextColor(); r != 0x40 || g != 0x50 || b != 0x60 {
		t.Errorf("GetTextColor() = (%d, %d, %d), want (64, 80, 96)", r, g, b)
	}

	if err := c.SetBarColor("nope"); err == nil {
		t.Error("SetBarColor(\"nope\") expected error, got nil")
	}
	// A failed parse must not clobber the previous override
	if r, _, _ := c.GetBarColor(); r != 0x10 {
		t.Errorf("GetBarColor() red = %d after failed set, want 16", r)
	}
}

// ptrUint8 is a helper to create pointers to uint8 values for testing.
func ptrUint8(v uint8) *uint8 {
	return &v
}
