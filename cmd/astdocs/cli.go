package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	flag "github.com/spf13/pflag"

	astdocs "github.com/carnarez/goldmark-astdocs"
	"github.com/carnarez/goldmark-astdocs/internal/config"
	"github.com/carnarez/goldmark-astdocs/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no markdown input files")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrReadCSS      = errors.New("failed to read stylesheet")
	ErrWriteHTML    = errors.New("failed to write HTML file")
	ErrWriteCSS     = errors.New("failed to write stylesheet")
)

// firstHeadingPattern matches an ATX level-1 heading for title derivation.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	configPath string
	sourceRoot string
	style      string
	outDir     string
	title      string
	cssOut     string
	verbose    bool
	version    bool
}

// parseFlags parses command-line arguments into flags and positional inputs.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("astdocs", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	fs.StringVar(&f.sourceRoot, "source-root", "", "path prefix for %%%SOURCE markers")
	fs.StringVar(&f.style, "style", "", "chroma style for the generated stylesheet")
	fs.StringVarP(&f.outDir, "out", "o", "", "output directory (default: next to input)")
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.StringVar(&f.cssOut, "write-css", "", "write the stylesheet to the given path and exit")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// run executes the CLI: load config, resolve inputs, render each markdown
// file to HTML.
func run(args []string) error {
	flags, inputs, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Println("astdocs " + Version)
		return nil
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if flags.cssOut != "" {
		return writeStylesheet(flags.cssOut, cfg.Syntax.Style)
	}

	files, err := resolveInputs(inputs)
	if err != nil {
		return err
	}

	opts := []astdocs.Option{
		astdocs.WithSourceRoot(cfg.SourceRoot),
	}
	if cfg.Syntax.Style != "" {
		opts = append(opts, astdocs.WithSyntaxStyle(cfg.Syntax.Style))
	}
	if cfg.Document.Stylesheet != "" {
		css, err := os.ReadFile(cfg.Document.Stylesheet) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		opts = append(opts, astdocs.WithStylesheet(string(css)))
	}

	renderer, err := astdocs.NewRenderer(opts...)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := renderFile(renderer, cfg, file, flags.verbose); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig loads the YAML config (or defaults) and applies flag overrides.
func loadConfig(flags *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.sourceRoot != "" {
		cfg.SourceRoot = flags.sourceRoot
	}
	if flags.style != "" {
		cfg.Syntax.Style = flags.style
	}
	if flags.outDir != "" {
		cfg.Output.Dir = flags.outDir
	}
	if flags.title != "" {
		cfg.Document.Title = flags.title
	}
	return cfg, nil
}

// resolveInputs expands file and directory arguments into markdown paths.
func resolveInputs(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		found, err := fileutil.DiscoverMarkdown(input)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	return files, nil
}

// renderFile renders one markdown file and writes the HTML next to it or
// into the configured output directory.
func renderFile(renderer *astdocs.Renderer, cfg *config.Config, file string, verbose bool) error {
	content, err := os.ReadFile(file) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	title := cfg.Document.Title
	if title == "" {
		title = extractFirstHeading(string(content))
	}

	result, err := renderer.Render(context.Background(), astdocs.Input{
		Markdown: string(content),
		Title:    title,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}

	out := fileutil.OutputPath(file, cfg.Output.Dir)
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteHTML, err)
		}
	}
	if err := os.WriteFile(out, result.HTML, 0o644); err != nil { // #nosec G306 -- rendered docs are world-readable
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "%s -> %s\n", file, out)
	}
	return nil
}

// writeStylesheet generates the document stylesheet and writes it to path.
func writeStylesheet(path, style string) error {
	if style == "" {
		style = astdocs.DefaultSyntaxStyle
	}
	css, err := astdocs.StylesheetCSS(style)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil { // #nosec G306 -- stylesheet is world-readable
		return fmt.Errorf("%w: %v", ErrWriteCSS, err)
	}
	return nil
}

// extractFirstHeading returns the text of the first level-1 ATX heading, or
// empty when the document has none.
func extractFirstHeading(markdown string) string {
	m := firstHeadingPattern.FindStringSubmatch(markdown)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
