package astdocs

// DefaultSyntaxStyle is the chroma style used for generated stylesheets when
// none is configured.
const DefaultSyntaxStyle = "github"

// DefaultTitle is used when Input.Title is empty and the document has no
// leading heading to derive one from.
const DefaultTitle = "Documentation"

// Input contains render parameters.
type Input struct {
	Markdown string // astdocs-flavoured Markdown content (required)
	Title    string // document title (optional, defaults to DefaultTitle)
}

// Result holds the rendered document.
type Result struct {
	HTML []byte
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	sourceRoot string
	style      string
	stylesheet string
}

// WithSourceRoot sets the path prefix applied to %%%SOURCE marker paths.
// Defaults to ".".
func WithSourceRoot(dir string) Option {
	return func(r *Renderer) {
		r.cfg.sourceRoot = dir
	}
}

// WithSyntaxStyle sets the chroma style used when generating the document
// stylesheet. Unknown names fall back to chroma's default colors.
func WithSyntaxStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.style = name
	}
}

// WithStylesheet replaces the generated document stylesheet entirely.
func WithStylesheet(css string) Option {
	return func(r *Renderer) {
		r.cfg.stylesheet = css
	}
}

// WithLineTransform registers an extra line pass. Priority must be >= 1: the
// marker source pass owns priority 0 so markers are consumed before any other
// transform sees them. Panics on nil transform or priority < 1 (programmer
// error, similar to time.NewTicker).
func WithLineTransform(t LineTransform, priority int) Option {
	if t == nil {
		panic("astdocs: WithLineTransform transform must not be nil")
	}
	if priority < 1 {
		panic("astdocs: WithLineTransform priority must be >= 1")
	}
	return func(r *Renderer) {
		r.lineTransforms = append(r.lineTransforms, prioritizedTransform{transform: t, priority: priority})
	}
}
