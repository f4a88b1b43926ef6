package subway

import "strings"

// Directory is a directory of the hierarchy with its files.
type Directory struct {
	Path  string
	Files []string
}

// Structure describes the filesystem hierarchy the map depicts. The map
// layout is a literal table and does not read it; Paths lets callers check
// the two agree.
type Structure struct {
	Root  string
	Files []string
	Dirs  []Directory
}

// ProcStructure is the proc: drive hierarchy.
var ProcStructure = Structure{
	Root: "proc:/",
	Files: []string{
		"cpuinfo", "meminfo", "version", "uptime", "loadavg", "stat",
		"mounts", "cmdline", "filesystems", "swaps", "partitions", "modules",
	},
	Dirs: []Directory{
		{"net", []string{"dev", "route", "arp", "tcp", "udp"}},
		{"sys/kernel", []string{"hostname", "ostype", "osrelease", "version"}},
		{"devices", []string{"block", "character"}},
		{"self", []string{"cmdline", "status", "stat", "environ"}},
		{"[PID]", []string{"cmdline", "status", "stat", "environ", "maps"}},
	},
}

// Paths returns every path below the root in declaration order. Directories
// end in "/", and intermediate directories such as "sys/" are included.
func (s Structure) Paths() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	out = append(out, s.Files...)
	for _, f := range s.Files {
		seen[f] = true
	}
	for _, d := range s.Dirs {
		parts := strings.Split(d.Path, "/")
		for i := range parts {
			add(strings.Join(parts[:i+1], "/") + "/")
		}
		for _, f := range d.Files {
			add(d.Path + "/" + f)
		}
	}
	return out
}

// Contains reports whether path names the root or an entry of the hierarchy.
func (s Structure) Contains(path string) bool {
	if path == s.Root {
		return true
	}
	for _, p := range s.Paths() {
		if p == path {
			return true
		}
	}
	return false
}
