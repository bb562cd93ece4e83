// Package main provides a lint tool for chart theme files. It parses each
// YAML theme, reports structural problems, and optionally checks every
// theme against a target engine version.
//
//	themelint themes/*.yaml
//	themelint --engine 5.4.0 themes/*.yaml
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/driftkit/pkg/chart"
)

func main() {
	engineVersion, paths, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(2)
	}
	if len(paths) == 0 {
		printUsage()
		os.Exit(2)
	}

	registry := chart.NewRegistry()
	failed := false
	for _, path := range paths {
		theme, err := chart.LoadThemeFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		if _, exists := registry.Lookup(theme.Name); exists {
			fmt.Fprintf(os.Stderr, "%s: duplicate theme name %q\n", path, theme.Name)
			failed = true
			continue
		}
		if err := registry.Register(theme); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		if engineVersion != "" && !theme.CompatibleWith(engineVersion) {
			fmt.Fprintf(os.Stderr, "%s: theme %q requires engine %s, target is %s\n",
				path, theme.Name, theme.MinEngineVersion, engineVersion)
			failed = true
			continue
		}
		fmt.Printf("%s: ok (%s)\n", path, describe(theme))
	}

	if failed {
		os.Exit(1)
	}
	fmt.Printf("%d theme(s) valid: %s\n",
		len(registry.Names()), strings.Join(registry.Names(), ", "))
}

func parseArgs(args []string) (engineVersion string, paths []string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printUsage()
			os.Exit(0)
		case arg == "--engine":
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--engine requires a version")
			}
			engineVersion = args[i+1]
			i++
		case strings.HasPrefix(arg, "--engine="):
			engineVersion = strings.TrimPrefix(arg, "--engine=")
		case strings.HasPrefix(arg, "-"):
			return "", nil, fmt.Errorf("unknown flag %q", arg)
		default:
			paths = append(paths, arg)
		}
	}
	return engineVersion, paths, nil
}

func describe(theme *chart.Theme) string {
	parts := []string{theme.Name}
	if theme.MinEngineVersion != "" {
		parts = append(parts, "engine >= "+theme.MinEngineVersion)
	}
	if n := len(theme.Palette); n > 0 {
		parts = append(parts, fmt.Sprintf("%d palette color(s)", n))
	}
	return strings.Join(parts, ", ")
}

func printUsage() {
	fmt.Println("Validate chart theme files.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  themelint [flags] FILE...")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --engine VERSION   Also check each theme against an engine version")
	fmt.Println("  -h, --help         Show this help")
}
