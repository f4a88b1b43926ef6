package subway

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, false},
		{"Gray", color.NRGBA{128, 128, 128, 255}, false},
		{"#E63946", color.NRGBA{0xe6, 0x39, 0x46, 255}, false},
		{"#f5f5f5", color.NRGBA{0xf5, 0xf5, 0xf5, 255}, false},
		{"  #264653 ", color.NRGBA{0x26, 0x46, 0x53, 255}, false},
		{"purple", color.NRGBA{}, true},
		{"#zz0000", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, entry := range ThemeLines {
		got := MustColor(Hex(entry.Color))
		if got != entry.Color {
			t.Errorf("%s: %v round-tripped to %v", entry.Name, entry.Color, got)
		}
	}
}

func TestParseLineStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    LineStyle
		wantErr bool
	}{
		{"-", StyleSolid, false},
		{"solid", StyleSolid, false},
		{"--", StyleDashed, false},
		{":", StyleDotted, false},
		{"-.", StyleDashDot, false},
		{"DashDot", StyleDashDot, false},
		{"~", StyleSolid, true},
	}

	for _, tt := range tests {
		got, err := ParseLineStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLineStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLineStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectOps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, -5, 20, 8}

	if got := a.Union(b); got != (Rect{0, -5, 20, 10}) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %v, want %v", got, a)
	}
	if got := a.Intersect(b); got != (Rect{5, 0, 10, 8}) {
		t.Errorf("Intersect = %v", got)
	}
	if !a.Intersect(Rect{20, 20, 30, 30}).Empty() {
		t.Error("Disjoint rectangles should have an empty intersection")
	}
	if got := a.Inset(1); got != (Rect{-1, -1, 11, 11}) {
		t.Errorf("Inset = %v", got)
	}
}

func TestStructurePaths(t *testing.T) {
	paths := ProcStructure.Paths()
	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			t.Errorf("Duplicate path %q", p)
		}
		seen[p] = true
	}
	for _, p := range []string{"cpuinfo", "sys/", "sys/kernel/", "sys/kernel/ostype", "[PID]/maps"} {
		if !seen[p] {
			t.Errorf("Expected path %q", p)
		}
	}
	if !ProcStructure.Contains("proc:/") {
		t.Error("Root should be contained")
	}
	if ProcStructure.Contains("kernel/ostype") {
		t.Error("kernel/ostype is not a full path")
	}
}
