package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantInputs []string
		check      func(t *testing.T, f *cliFlags)
	}{
		{
			name:       "defaults",
			args:       []string{"astdocs", "doc.md"},
			wantInputs: []string{"doc.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.configPath != "" || f.outDir != "" || f.verbose {
					t.Errorf("unexpected non-zero flags: %+v", f)
				}
			},
		},
		{
			name:       "long flags",
			args:       []string{"astdocs", "--source-root", "src", "--style", "monokai", "--out", "dist", "doc.md"},
			wantInputs: []string{"doc.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.sourceRoot != "src" {
					t.Errorf("sourceRoot = %q, want %q", f.sourceRoot, "src")
				}
				if f.style != "monokai" {
					t.Errorf("style = %q, want %q", f.style, "monokai")
				}
				if f.outDir != "dist" {
					t.Errorf("outDir = %q, want %q", f.outDir, "dist")
				}
			},
		},
		{
			name:       "short flags",
			args:       []string{"astdocs", "-c", "cfg.yaml", "-o", "out", "-v", "a.md", "b.md"},
			wantInputs: []string{"a.md", "b.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.configPath != "cfg.yaml" {
					t.Errorf("configPath = %q, want %q", f.configPath, "cfg.yaml")
				}
				if f.outDir != "out" {
					t.Errorf("outDir = %q, want %q", f.outDir, "out")
				}
				if !f.verbose {
					t.Error("verbose not set")
				}
			},
		},
		{
			name:       "version flag",
			args:       []string{"astdocs", "--version"},
			wantInputs: []string{},
			check: func(t *testing.T, f *cliFlags) {
				if !f.version {
					t.Error("version not set")
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, inputs, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if len(inputs) != len(tt.wantInputs) {
				t.Fatalf("inputs = %q, want %q", inputs, tt.wantInputs)
			}
			for i := range inputs {
				if inputs[i] != tt.wantInputs[i] {
					t.Errorf("inputs[%d] = %q, want %q", i, inputs[i], tt.wantInputs[i])
				}
			}
			tt.check(t, flags)
		})
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := parseFlags([]string{"astdocs", "--no-such-flag"}); err == nil {
		t.Fatal("parseFlags() expected error for unknown flag")
	}
}

func TestExtractFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"leading heading", "# `module`\n\nprose\n", "`module`"},
		{"heading after prose", "intro\n\n# Title\n", "Title"},
		{"no heading", "just prose\n", ""},
		{"deeper heading ignored", "## Section\n", ""},
		{"trailing spaces trimmed", "# Title   \n", "Title"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := extractFirstHeading(tt.markdown); got != tt.want {
				t.Errorf("extractFirstHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveInputsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := resolveInputs(nil); !errors.Is(err, ErrNoInput) {
		t.Fatalf("resolveInputs() error = %v, want ErrNoInput", err)
	}
}

func TestRunRendersFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "module.py")
	if err := os.WriteFile(src, []byte("def main():\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := filepath.Join(dir, "module.md")
	markdown := "# `module`\n\n" +
		"%%%START FUNCTIONDEF module.main\n\n" +
		"Entry point.\n\n" +
		"%%%SOURCE module.py:1:2\n" +
		"%%%END FUNCTIONDEF module.main\n"
	if err := os.WriteFile(doc, []byte(markdown), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "dist")
	err := run([]string{"astdocs", "--source-root", dir, "--out", outDir, doc})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out, err := os.ReadFile(filepath.Join(outDir, "module.html"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<title>`module`</title>",
		`<div class="functiondef-object">`,
		"Entry point.",
		"<details",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "%%%") {
		t.Error("marker text leaked into output")
	}
}

func TestRunWriteCSS(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs.css")
	if err := run([]string{"astdocs", "--write-css", path}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	css, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stylesheet: %v", err)
	}
	if !strings.Contains(string(css), ".chroma") {
		t.Error("stylesheet missing chroma classes")
	}
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "html")

	cfgPath := filepath.Join(dir, "astdocs.yaml")
	cfg := "sourceRoot: " + dir + "\noutput:\n  dir: " + outDir + "\ndocument:\n  title: Configured\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(doc, []byte("# Heading\n\nprose\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{"astdocs", "--config", cfgPath, doc}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out, err := os.ReadFile(filepath.Join(outDir, "doc.html"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(out), "<title>Configured</title>") {
		t.Error("configured title not applied")
	}
}

func TestRunMissingCustomStylesheet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(doc, []byte("# Heading\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "astdocs.yaml")
	cfg := "document:\n  stylesheet: " + filepath.Join(dir, "nope.css") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run([]string{"astdocs", "--config", cfgPath, doc})
	if !errors.Is(err, ErrReadCSS) {
		t.Fatalf("run() error = %v, want ErrReadCSS", err)
	}
	if exitCodeFor(err) != ExitIO {
		t.Errorf("exitCodeFor() = %d, want %d", exitCodeFor(err), ExitIO)
	}
}

func TestRunMissingInput(t *testing.T) {
	t.Parallel()

	err := run([]string{"astdocs", filepath.Join(t.TempDir(), "nope.md")})
	if err == nil {
		t.Fatal("run() expected error for missing input")
	}
	if exitCodeFor(err) != ExitIO {
		t.Errorf("exitCodeFor() = %d, want %d", exitCodeFor(err), ExitIO)
	}
}
