package orchestrator

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultThemeName    = "default"
	DefaultThemeVariant = "light"
)

// ErrThemeNotFound is returned when a requested theme is not registered.
var ErrThemeNotFound = errors.New("orchestrator: theme not found")

// ThemeSelector resolves a theme/variant pair into a go-theme Selection.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// ThemeCatalog is an in-memory ThemeSelector over registered manifests. Empty
// names fall back to the catalog defaults and unknown variants fall back to
// the base manifest.
type ThemeCatalog struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

// NewThemeCatalog builds a catalog from manifests. The first manifest's name
// becomes the default theme unless overridden with SetDefaults.
func NewThemeCatalog(manifests ...*theme.Manifest) (*ThemeCatalog, error) {
	c := &ThemeCatalog{manifests: make(map[string]*theme.Manifest)}
	for _, m := range manifests {
		if err := c.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultThemeCatalog returns a catalog holding DefaultManifest with the
// light variant selected.
func DefaultThemeCatalog() *ThemeCatalog {
	c, err := NewThemeCatalog(DefaultManifest())
	if err != nil {
		panic(err)
	}
	c.SetDefaults(DefaultThemeName, DefaultThemeVariant)
	return c
}

// Register adds a manifest. Duplicate names return an error.
func (c *ThemeCatalog) Register(m *theme.Manifest) error {
	if m == nil {
		return errors.New("orchestrator: theme manifest is required")
	}
	name := normalizeName(m.Name)
	if name == "" {
		return errors.New("orchestrator: theme name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.manifests[name]; exists {
		return fmt.Errorf("orchestrator: theme %q already registered", name)
	}
	c.manifests[name] = m
	if c.defaultTheme == "" {
		c.defaultTheme = name
	}
	return nil
}

// SetDefaults changes the theme and variant used for empty selections.
func (c *ThemeCatalog) SetDefaults(name, variant string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if trimmed := normalizeName(name); trimmed != "" {
		c.defaultTheme = trimmed
	}
	c.defaultVariant = normalizeName(variant)
}

// Names lists registered themes in sorted order.
func (c *ThemeCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *ThemeCatalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	target := normalizeName(name)
	if target == "" {
		target = c.defaultTheme
	}
	manifest, ok := c.manifests[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, target)
	}

	selected := normalizeName(variant)
	if selected == "" {
		selected = c.defaultVariant
	}
	if _, ok := manifest.Variants[selected]; !ok {
		selected = ""
	}

	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  selected,
		Manifest: manifest,
	}, nil
}

// DefaultManifest describes the built-in palette with light and dark
// variants. Token keys become CSS custom properties of the same name.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background": "#f7f5f0",
			"surface":    "#ffffff",
			"text":       "#1f2933",
			"muted":      "#616e7c",
			"accent":     "#7b4bb7",
			"border":     "#d9d4c7",
			"highlight":  "#f3e8ff",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"background": "#14121b",
					"surface":    "#1f1b2b",
					"text":       "#ece8f5",
					"muted":      "#a39db3",
					"accent":     "#b794f4",
					"border":     "#39324a",
					"highlight":  "#3b2d5c",
				},
			},
		},
	}
}

// rendererConfig flattens a selection into the config handed to renderers:
// variant tokens and templates override the base manifest and every token
// is mirrored as a "--"-prefixed CSS variable.
func rendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	variant, hasVariant := m.Variants[sel.Variant]

	tokens := mergeStrings(m.Tokens, nil)
	partials := mergeStrings(m.Templates, nil)
	files := mergeStrings(m.Assets.Files, nil)
	prefix := m.Assets.Prefix
	if hasVariant {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		if prefix == "" {
			return "/" + file
		}
		return strings.TrimRight(prefix, "/") + "/" + path.Clean(file)
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
