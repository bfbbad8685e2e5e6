package astdocs

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSourcePassIdentity(t *testing.T) {
	t.Parallel()

	// No marker anywhere: the pass returns the identical sequence.
	lines := []string{
		"# Heading",
		"",
		"Some prose with a colon: and numbers 1:2.",
		"- list item",
		"",
	}

	pass := NewSourcePass(".")
	got, err := pass.TransformLines(lines)
	if err != nil {
		t.Fatalf("TransformLines() error = %v", err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("TransformLines() = %q, want unchanged %q", got, lines)
	}
}

func TestSourcePassSubstitution(t *testing.T) {
	t.Parallel()

	dir := writeFixture(t)
	pass := NewSourcePass(dir)

	got, err := pass.TransformLines([]string{"%%%SOURCE f.txt:2:4"})
	if err != nil {
		t.Fatalf("TransformLines() error = %v", err)
	}

	joined := strings.Join(got, "\n")
	for _, want := range []string{"<details", "<summary>source</summary>", "bravo", "charlie", "delta", "</details>"} {
		if !strings.Contains(joined, want) {
			t.Errorf("output missing %q\n%s", want, joined)
		}
	}
	for _, not := range []string{"%%%SOURCE", "alpha", "echo"} {
		if strings.Contains(joined, not) {
			t.Errorf("output should not contain %q\n%s", not, joined)
		}
	}

	// The fragment spans multiple raw lines, not one giant line.
	if len(got) < 3 {
		t.Errorf("expected multi-line replacement, got %d lines", len(got))
	}

	// A blank terminator line follows the fragment so an adjacent marker
	// line is not swallowed by the raw HTML block.
	if got[len(got)-1] != "" {
		t.Errorf("expected trailing blank line, got %q", got[len(got)-1])
	}
}

func TestSourcePassPreservesSurroundingLines(t *testing.T) {
	t.Parallel()

	dir := writeFixture(t)
	pass := NewSourcePass(dir)

	lines := []string{"before", "%%%SOURCE f.txt:2:2", "after"}
	got, err := pass.TransformLines(lines)
	if err != nil {
		t.Fatalf("TransformLines() error = %v", err)
	}

	if got[0] != "before" {
		t.Errorf("first line = %q, want %q", got[0], "before")
	}
	if got[len(got)-1] != "after" {
		t.Errorf("last line = %q, want %q", got[len(got)-1], "after")
	}
}

func TestSourcePassSkipsFencedCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{
			name:  "marker inside plain fence",
			lines: []string{"```", "%%%SOURCE f.txt:2:4", "```"},
		},
		{
			name:  "marker inside language fence",
			lines: []string{"```text", "%%%SOURCE f.txt:2:4", "```"},
		},
		{
			name:  "marker inside longer fence",
			lines: []string{"````", "```", "%%%SOURCE f.txt:2:4", "```", "````"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Resolver root deliberately empty of files: a substitution
			// attempt would fail loudly.
			pass := NewSourcePass(t.TempDir())
			got, err := pass.TransformLines(tt.lines)
			if err != nil {
				t.Fatalf("TransformLines() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.lines) {
				t.Errorf("TransformLines() = %q, want unchanged %q", got, tt.lines)
			}
		})
	}
}

func TestSourcePassResumesAfterFence(t *testing.T) {
	t.Parallel()

	dir := writeFixture(t)
	pass := NewSourcePass(dir)

	lines := []string{"```", "code", "```", "%%%SOURCE f.txt:3:3"}
	got, err := pass.TransformLines(lines)
	if err != nil {
		t.Fatalf("TransformLines() error = %v", err)
	}

	joined := strings.Join(got, "\n")
	if !strings.Contains(joined, "charlie") {
		t.Errorf("marker after fence not substituted\n%s", joined)
	}
}

func TestSourcePassPropagatesReadError(t *testing.T) {
	t.Parallel()

	pass := NewSourcePass(t.TempDir())
	_, err := pass.TransformLines([]string{"%%%SOURCE missing.txt:1:2"})
	if !errors.Is(err, ErrSourceRead) {
		t.Fatalf("TransformLines() error = %v, want ErrSourceRead", err)
	}
}

func TestSourcePassIdempotent(t *testing.T) {
	t.Parallel()

	dir := writeFixture(t)
	pass := NewSourcePass(dir)

	once, err := pass.TransformLines([]string{"intro", "%%%SOURCE f.txt:1:3", "outro"})
	if err != nil {
		t.Fatalf("first TransformLines() error = %v", err)
	}

	twice, err := pass.TransformLines(once)
	if err != nil {
		t.Fatalf("second TransformLines() error = %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("pass is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
