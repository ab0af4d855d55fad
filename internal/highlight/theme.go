package highlight

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
)

// DefaultThemeName is the theme selected at startup.
const DefaultThemeName = "solarized-dark"

// builtinThemeNames are the chroma styles registered by default, in
// presentation order.
var builtinThemeNames = []string{
	"solarized-dark",
	"monokai",
	"dracula",
	"github",
}

// Theme maps token categories to style tokens. It wraps a chroma
// style and classifies itself as dark or light from its background
// color, which drives the surrounding chrome.
type Theme struct {
	name  string
	dark  bool
	style *chroma.Style
}

// NewTheme creates a theme over a chroma style.
func NewTheme(name string, style *chroma.Style) *Theme {
	return &Theme{
		name:  name,
		dark:  backgroundIsDark(style),
		style: style,
	}
}

// Name returns the theme's display name.
func (t *Theme) Name() string {
	return t.name
}

// IsDark returns true if the theme's background is dark.
func (t *Theme) IsDark() bool {
	return t.dark
}

// Background returns the theme's background color as "#rrggbb", or ""
// if the style does not set one.
func (t *Theme) Background() string {
	entry := t.style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return ""
	}
	return entry.Background.String()
}

// Default returns the style token for unclassified text.
func (t *Theme) Default() Style {
	return t.styleFor(chroma.Text)
}

// styleFor converts a chroma style entry into a rendering-agnostic
// style token.
func (t *Theme) styleFor(tt chroma.TokenType) Style {
	entry := t.style.Get(tt)

	var s Style
	if entry.Colour.IsSet() {
		s.Foreground = entry.Colour.String()
	}
	if entry.Background.IsSet() && tt != chroma.Background {
		s.Background = entry.Background.String()
	}
	s.Bold = entry.Bold == chroma.Yes
	s.Italic = entry.Italic == chroma.Yes
	s.Underline = entry.Underline == chroma.Yes
	return s
}

// backgroundIsDark reports whether a style's background luminance is
// below the midpoint. Styles without a background count as light.
func backgroundIsDark(style *chroma.Style) bool {
	entry := style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return false
	}
	c, err := colorful.Hex(entry.Background.String())
	if err != nil {
		return false
	}
	_, _, l := c.Hsl()
	return l < 0.5
}

// fallbackTheme returns the built-in default; used when a caller
// passes a nil theme.
func fallbackTheme() *Theme {
	return NewTheme(DefaultThemeName, styles.Get(DefaultThemeName))
}

// Registry holds the selectable themes. Themes are registered once at
// startup and looked up per highlighting pass.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Theme
	order  []string
}

// NewRegistry returns a registry pre-populated with the built-in
// themes.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Theme)}
	for _, name := range builtinThemeNames {
		r.Register(NewTheme(name, styles.Get(name)))
	}
	return r
}

// Register adds or replaces a theme.
func (r *Registry) Register(t *Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[t.name]; !exists {
		r.order = append(r.order, t.name)
	}
	r.byName[t.name] = t
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Default returns the startup theme.
func (r *Registry) Default() *Theme {
	if t, ok := r.Get(DefaultThemeName); ok {
		return t
	}
	return fallbackTheme()
}

// Names returns the registered theme names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Next returns the theme following name in registration order,
// wrapping around. Used to cycle the active theme.
func (r *Registry) Next(name string) *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, n := range r.order {
		if n == name {
			next := r.order[(i+1)%len(r.order)]
			return r.byName[next]
		}
	}
	if len(r.order) > 0 {
		return r.byName[r.order[0]]
	}
	return fallbackTheme()
}

// Theme JSON format:
//
//	{
//	  "name": "my-theme",
//	  "background": "#1c1c1c",
//	  "styles": {
//	    "Keyword": "bold #ff79c6",
//	    "Comment": "italic #6272a4",
//	    "LiteralString": "#f1fa8c"
//	  }
//	}
//
// Keys under "styles" are chroma token category names; values are
// chroma style entry definitions.

// ErrInvalidTheme indicates a theme definition that could not be
// parsed.
var ErrInvalidTheme = errors.New("invalid theme definition")

// LoadThemeJSON parses a user-supplied theme definition.
func LoadThemeJSON(data []byte) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidTheme)
	}

	name := gjson.GetBytes(data, "name").String()
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidTheme)
	}

	builder := chroma.NewStyleBuilder(name)
	if bg := gjson.GetBytes(data, "background").String(); bg != "" {
		builder.Add(chroma.Background, "bg:"+bg)
	}

	var parseErr error
	gjson.GetBytes(data, "styles").ForEach(func(key, value gjson.Result) bool {
		tt, err := chroma.TokenTypeString(key.String())
		if err != nil {
			parseErr = fmt.Errorf("%w: unknown token category %q", ErrInvalidTheme, key.String())
			return false
		}
		builder.Add(tt, value.String())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	style, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	return NewTheme(name, style), nil
}

// SortedNames returns all registered theme names sorted
// alphabetically, for display.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}
