package subway

import (
	"sort"
	"testing"
)

func TestGenerateMapStations(t *testing.T) {
	m := NewMapRenderer(DefaultOptions())
	m.GenerateMap()
	st := m.Stations()

	// 1 root + 7 system (6 + cmdline) + modules + 4 storage
	// + net/ 6 + sys/ 1 + kernel 5 + devices 3 + self 5 + [PID] 6
	const want = 1 + 7 + 1 + 4 + 6 + 1 + 5 + 3 + 5 + 6
	if len(st) != want {
		names := make([]string, 0, len(st))
		for n := range st {
			names = append(names, n)
		}
		sort.Strings(names)
		t.Fatalf("Expected %d stations, got %d: %v", want, len(st), names)
	}

	tests := []struct {
		name string
		want Point
	}{
		{"proc:/", Point{50, 50}},
		{"stat", Point{50, 88}},
		{"net/", Point{70, 70}},
		{"net/udp", Point{90, 66}},
		{"sys/kernel/", Point{80, 22}},
		{"sys/kernel/ostype", Point{90, 16}},
		{"devices/character", Point{80, 47}},
		{"self/environ", Point{12, 70}},
		{"[PID]/", Point{30, 82}},
		{"[PID]/maps", Point{14, 78}},
		{"filesystems", Point{24, 24}},
		{"modules", Point{38, 50}},
		{"cmdline", Point{50, 42}},
	}
	for _, tt := range tests {
		got, ok := st[tt.name]
		if !ok {
			t.Errorf("Station %q missing", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Station %q at %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGenerateMapMatchesStructure(t *testing.T) {
	m := NewMapRenderer(DefaultOptions())
	m.GenerateMap()
	st := m.Stations()

	for name := range st {
		if !ProcStructure.Contains(name) {
			t.Errorf("Station %q has no path in the structure", name)
		}
	}
	for _, p := range ProcStructure.Paths() {
		if _, ok := st[p]; !ok {
			t.Errorf("Path %q has no station", p)
		}
	}
}

func TestGenerateMapLayering(t *testing.T) {
	m := NewMapRenderer(DefaultOptions())
	m.GenerateMap()

	prev := 0
	for _, it := range m.Canvas().Items() {
		if it.Layer() < prev {
			t.Fatalf("Items out of layer order: %d after %d", it.Layer(), prev)
		}
		prev = it.Layer()
		if txt, ok := it.(*Text); ok && txt.Z != LayerLabel {
			t.Errorf("Text %q on layer %d, want %d", txt.Content, txt.Z, LayerLabel)
		}
	}
}

func TestGenerateMapBoxedHubs(t *testing.T) {
	m := NewMapRenderer(DefaultOptions())
	m.GenerateMap()

	boxed := map[string]bool{}
	for _, it := range m.Canvas().Items() {
		if txt, ok := it.(*Text); ok && txt.Box != nil {
			boxed[txt.Content] = true
		}
	}
	for _, name := range []string{"proc:/", "net/", "sys/", "devices/", "self/"} {
		if !boxed[name] {
			t.Errorf("Hub label %q should have a background", name)
		}
	}
	for _, name := range []string{"kernel/", "[PID]/"} {
		if boxed[name] {
			t.Errorf("Sub hub label %q should not have a background", name)
		}
	}
}
