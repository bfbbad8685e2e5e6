// Package astdocs renders Markdown carrying astdocs %%% markers to HTML.
//
// The astdocs generator (https://github.com/carnarez/astdocs) emits three
// marker forms into its Markdown output:
//
//   - %%%SOURCE <path>:<start>[:<end>] — replaced by a collapsible,
//     line-numbered excerpt of the referenced file;
//   - %%%START <KIND> <name> / %%%END <KIND> <name> — a pair bounding a
//     documented object, replaced by a <div class="<kind>-object"> wrapper
//     around the enclosed blocks.
//
// Both substitutions run ahead of generic Markdown handling so the raw
// marker text never leaks into the output.
//
// # Quick Start
//
// Create a renderer and render a document:
//
//	r, err := astdocs.NewRenderer(astdocs.WithSourceRoot("./package"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, astdocs.Input{Markdown: content})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", result.HTML, 0644)
//
// # Pipeline
//
// Rendering follows these stages:
//
//  1. Line passes over the raw input, highest priority first; the %%%SOURCE
//     pass always runs ahead of any registered transform.
//  2. Goldmark parsing; the %%%START/%%%END span pass runs as the first AST
//     transformer and wraps marker-delimited block spans in container nodes.
//  3. HTML rendering into a standalone document with an injected stylesheet.
//
// # Using the extension directly
//
// Hosts that own their goldmark instance attach the extension themselves and
// run the source pass over the input lines before conversion:
//
//	ext := astdocs.NewExtension("./package")
//	md := goldmark.New(goldmark.WithExtensions(ext))
//	lines, err := ext.SourcePass().TransformLines(lines)
//
// The source pass re-injects pre-rendered HTML, so the goldmark renderer
// needs html.WithUnsafe() for the excerpt markup to pass through.
package astdocs
