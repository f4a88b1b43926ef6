// Command subwaymap renders the proc: drive hierarchy as a subway map.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/ha1tch/subwaymap/pkg/mapfile"
	"github.com/ha1tch/subwaymap/pkg/preview"
	"github.com/ha1tch/subwaymap/pkg/subway"
)

const defaultOutput = "codebase-subway-map.png"

const usage = `subwaymap - render the PsProc filesystem as a subway map

Usage:
  subwaymap [options]

Options:
  -o, --output <path>   Output file (default: codebase-subway-map.png)
                        Format follows the extension: png, jpg, gif, tiff,
                        bmp, svg, pdf
  --dpi <int>           Raster resolution (default: 300)
  --show                Display the map in the terminal after saving
  --config <path>       Config file (default: $XDG_CONFIG_HOME/subwaymap/config.toml)
  -h, --help            Show this help

Examples:
  subwaymap
  subwaymap -o map.svg
  subwaymap --dpi 150 -o map-small.png
`

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errHelp = errors.New("help requested")

// options are the parsed command line flags. Pointer fields are nil when the
// flag was not given.
type options struct {
	output *string
	dpi    *int
	show   bool
	config string
}

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := arg, "", false
		switch {
		case strings.HasPrefix(arg, "--"):
			name, value, hasValue = strings.Cut(arg, "=")
		case strings.HasPrefix(arg, "-o") && len(arg) > 2:
			// -o=path and -opath
			name, value, hasValue = "-o", strings.TrimPrefix(arg[2:], "="), true
		}

		// next returns the flag's value, inline or from the following arg.
		next := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "-o", "--output":
			v, err := next()
			if err != nil {
				return opts, err
			}
			if v == "" {
				return opts, fmt.Errorf("flag %s requires a non-empty path", name)
			}
			opts.output = &v
		case "--dpi":
			v, err := next()
			if err != nil {
				return opts, err
			}
			dpi, err := strconv.Atoi(v)
			if err != nil {
				return opts, fmt.Errorf("invalid --dpi %q: must be an integer", v)
			}
			if dpi <= 0 {
				return opts, fmt.Errorf("invalid --dpi %d: must be positive", dpi)
			}
			opts.dpi = &dpi
		case "--config":
			v, err := next()
			if err != nil {
				return opts, err
			}
			opts.config = v
		case "--show":
			if hasValue {
				return opts, fmt.Errorf("flag --show takes no value")
			}
			opts.show = true
		case "-h", "--help":
			return opts, errHelp
		default:
			return opts, fmt.Errorf("unknown argument: %s", arg)
		}
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if errors.Is(err, errHelp) {
		fmt.Fprint(stdout, usage)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cfgPath, explicit := ConfigPath(), false
	if opts.config != "" {
		cfgPath, explicit = opts.config, true
	}
	cfg, err := LoadConfig(cfgPath, explicit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if opts.output != nil {
		cfg.Output = *opts.output
	}
	if opts.dpi != nil {
		cfg.DPI = *opts.dpi
	}
	if opts.show {
		cfg.Show = true
	}

	fmt.Fprintln(stdout, "Generating PsProc Codebase Subway Map...")

	rendererOpts, err := cfg.RendererOptions()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	m := subway.NewMapRenderer(rendererOpts)
	m.GenerateMap()

	if err := mapfile.Save(m.Canvas(), cfg.Output, mapfile.SaveOptions{DPI: float64(cfg.DPI)}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "Subway map saved to: %s\n", cfg.Output)

	if cfg.Show {
		if err := preview.Show(ctx, m.Canvas()); err != nil {
			fmt.Fprintf(stderr, "Error showing map: %v\n", err)
			return exitError
		}
	}

	fmt.Fprintf(stdout, "Done! Map saved as '%s'\n", cfg.Output)
	return exitOK
}
