package subway

import "image/color"

// branch is a terminal station placed relative to a hub.
type branch struct {
	dx, dy float64
	name   string
}

// drawBranches connects each branch to the hub with a thin line, draws a
// small station and labels it. Stations are registered as prefix+name.
func (m *MapRenderer) drawBranches(hub Point, prefix string, branches []branch, c color.NRGBA, label LabelOptions) {
	for _, b := range branches {
		x, y := hub.X+b.dx, hub.Y+b.dy
		m.DrawLine([]Point{hub, {x, y}}, c, 3, StyleSolid)
		m.DrawStation(x, y, prefix+b.name, c, false, 0.6)
		m.AddLabel(x, y, b.name, label)
	}
}

// drawHub draws an interchange with a bold label above or below it.
func (m *MapRenderer) drawHub(p Point, name, text string, c color.NRGBA, size, fontSize, offsetY float64, boxed bool) {
	m.DrawStation(p.X, p.Y, name, c, true, size)
	m.AddLabel(p.X, p.Y, text, LabelOptions{
		FontSize:   fontSize,
		Weight:     WeightBold,
		HAlign:     HAlignCenter,
		VAlign:     VAlignCenter,
		OffsetY:    offsetY,
		Background: boxed,
	})
}

// GenerateMap draws the complete proc: subway map. Every coordinate is a
// literal; nothing is laid out automatically.
func (m *MapRenderer) GenerateMap() {
	hub := Point{50, 50}
	m.drawHub(hub, "proc:/", "proc:/", ColorBlack, 1.5, 14, -3, true)

	// Branch label styles.
	rightSmall := LabelOptions{FontSize: 8, OffsetX: 2, VAlign: VAlignCenter}
	leftSmall := LabelOptions{FontSize: 8, OffsetX: -2, HAlign: HAlignRight, VAlign: VAlignCenter}

	// System Info line, straight up from the hub.
	sysInfo := []branch{
		{0, 8, "cpuinfo"},
		{0, 14, "meminfo"},
		{0, 20, "version"},
		{0, 26, "uptime"},
		{0, 32, "loadavg"},
		{0, 38, "stat"},
	}
	m.drawTrunk(hub, sysInfo, ColorSystemInfo, LabelOptions{FontSize: 9, OffsetX: 3, VAlign: VAlignCenter})

	// Network line, diagonal to the upper right.
	net := Point{hub.X + 20, hub.Y + 20}
	m.DrawLine([]Point{hub, net}, ColorNetwork, DefaultLineWidth, StyleSolid)
	m.drawHub(net, "net/", "net/", ColorNetwork, DefaultStationSize, 11, 2, true)
	m.drawBranches(net, "net/", []branch{
		{8, 4, "dev"},
		{12, 8, "route"},
		{16, 4, "arp"},
		{20, 0, "tcp"},
		{20, -4, "udp"},
	}, ColorNetwork, rightSmall)

	// Configuration line, diagonal to the lower right, through sys/ to kernel/.
	sys := Point{hub.X + 20, hub.Y - 20}
	m.DrawLine([]Point{hub, sys}, ColorConfig, DefaultLineWidth, StyleSolid)
	m.drawHub(sys, "sys/", "sys/", ColorConfig, DefaultStationSize, 11, -2.5, true)

	kernel := Point{sys.X + 10, sys.Y - 8}
	m.DrawLine([]Point{sys, kernel}, ColorConfig, DefaultLineWidth, StyleSolid)
	m.drawHub(kernel, "sys/kernel/", "kernel/", ColorConfig, 0.9, 10, -2, false)
	m.drawBranches(kernel, "sys/kernel/", []branch{
		{6, -4, "hostname"},
		{10, -6, "ostype"},
		{14, -4, "osrelease"},
		{18, 0, "version"},
	}, ColorConfig, rightSmall)

	// Devices line, horizontal to the right.
	dev := Point{hub.X + 22, hub.Y}
	m.DrawLine([]Point{hub, dev}, ColorDevices, DefaultLineWidth, StyleSolid)
	m.drawHub(dev, "devices/", "devices/", ColorDevices, DefaultStationSize, 11, 2, true)
	m.drawBranches(dev, "devices/", []branch{
		{8, 3, "block"},
		{8, -3, "character"},
	}, ColorDevices, rightSmall)

	// Process line, diagonal to the upper left, with self/ and [PID]/.
	self := Point{hub.X - 20, hub.Y + 20}
	m.DrawLine([]Point{hub, self}, ColorProcesses, DefaultLineWidth, StyleSolid)
	m.drawHub(self, "self/", "self/", ColorProcesses, DefaultStationSize, 11, 2, true)
	m.drawBranches(self, "self/", []branch{
		{-8, 4, "cmdline"},
		{-12, 8, "status"},
		{-16, 4, "stat"},
		{-18, 0, "environ"},
	}, ColorProcesses, leftSmall)

	pid := Point{self.X, self.Y + 12}
	m.DrawLine([]Point{self, pid}, ColorProcesses, DefaultLineWidth, StyleSolid)
	m.drawHub(pid, "[PID]/", "[PID]/", ColorProcesses, 0.9, 10, 2, false)
	m.drawBranches(pid, "[PID]/", []branch{
		{-6, 4, "cmdline"},
		{-10, 6, "status"},
		{-14, 4, "stat"},
		{-16, 0, "environ"},
		{-16, -4, "maps"},
	}, ColorProcesses, leftSmall)

	// Storage line, diagonal to the lower left.
	storage := []branch{
		{-8, -8, "mounts"},
		{-14, -14, "swaps"},
		{-20, -20, "partitions"},
		{-26, -26, "filesystems"},
	}
	m.drawTrunk(hub, storage, ColorStorage, LabelOptions{FontSize: 9, OffsetX: -2, HAlign: HAlignRight, VAlign: VAlignCenter})

	// Single-station spurs off the hub.
	modules := Point{hub.X - 12, hub.Y}
	m.DrawLine([]Point{hub, modules}, ColorSystemInfo, 3, StyleSolid)
	m.DrawStation(modules.X, modules.Y, "modules", ColorSystemInfo, false, 0.6)
	m.AddLabel(modules.X, modules.Y, "modules", leftSmall)

	cmdline := Point{hub.X, hub.Y - 8}
	m.DrawLine([]Point{hub, cmdline}, ColorSystemInfo, 3, StyleSolid)
	m.DrawStation(cmdline.X, cmdline.Y, "cmdline", ColorSystemInfo, false, 0.6)
	m.AddLabel(cmdline.X, cmdline.Y, "cmdline", LabelOptions{FontSize: 8, OffsetY: -2, HAlign: HAlignCenter, VAlign: VAlignCenter})

	m.DrawLegend()

	m.AddLabel(50, 2, "PowerShell proc: Drive Filesystem Structure", LabelOptions{
		FontSize: 10,
		HAlign:   HAlignCenter,
		VAlign:   VAlignBaseline,
		Slant:    SlantItalic,
		Color:    ColorGray,
	})
	m.AddLabel(50, 0.5, "Generated by subwaymap", LabelOptions{
		FontSize: 8,
		HAlign:   HAlignCenter,
		VAlign:   VAlignBaseline,
		Color:    ColorGray,
	})
}

// drawTrunk draws one line from start through every station in order, then
// the full-size stations and their labels. Stations keep their bare names.
func (m *MapRenderer) drawTrunk(start Point, stations []branch, c color.NRGBA, label LabelOptions) {
	points := []Point{start}
	for _, s := range stations {
		points = append(points, Point{start.X + s.dx, start.Y + s.dy})
	}
	m.DrawLine(points, c, DefaultLineWidth, StyleSolid)
	for i, s := range stations {
		p := points[i+1]
		m.DrawStation(p.X, p.Y, s.name, c, false, DefaultStationSize)
		m.AddLabel(p.X, p.Y, s.name, label)
	}
}
