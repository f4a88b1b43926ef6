package subway

import "image/color"

// Line colors, metro style.
var (
	ColorSystemInfo = MustColor("#E63946") // red
	ColorNetwork    = MustColor("#2A9D8F") // teal
	ColorConfig     = MustColor("#F4A261") // orange
	ColorDevices    = MustColor("#E76F51") // coral
	ColorProcesses  = MustColor("#264653") // dark blue
	ColorStorage    = MustColor("#8338EC") // purple
)

// Fixed colors used around the lines.
var (
	ColorWhite = MustColor("white")
	ColorBlack = MustColor("black")
	ColorGray  = MustColor("gray")

	ColorPage = MustColor("#f5f5f5")
	ColorPlot = ColorWhite
)

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Name  string
	Color color.NRGBA
}

// ThemeLines lists the six thematic lines in legend order.
var ThemeLines = []LegendEntry{
	{"System Info Line", ColorSystemInfo},
	{"Network Line", ColorNetwork},
	{"Configuration Line", ColorConfig},
	{"Devices Line", ColorDevices},
	{"Process Line", ColorProcesses},
	{"Storage Line", ColorStorage},
}
