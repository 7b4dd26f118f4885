// Package i18n serves translated UI strings from .po resources embedded in
// the binary. Each locale is parsed at most once per ResourceManager and the
// resulting Bundle is shared for the life of the manager.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"

	"github.com/jaminalder/codex-binoxxo/internal/metrics"
)

//go:embed locales/*.po
var localeFS embed.FS

const localeDir = "locales"

// ResourceManager caches one Bundle per locale. Bundles are inserted once,
// never replaced and never evicted. Safe for concurrent use.
type ResourceManager struct {
	mu      sync.RWMutex
	bundles map[string]*Bundle
	parses  singleflight.Group
	fsys    fs.FS
}

func NewResourceManager() *ResourceManager {
	return &ResourceManager{bundles: make(map[string]*Bundle), fsys: localeFS}
}

// Bundle returns the bundle for locale, parsing its resource on first use.
// It panics when locale is not a valid tag or has no embedded resource.
func (m *ResourceManager) Bundle(locale string) *Bundle {
	if b, ok := m.cached(locale); ok {
		return b
	}
	v, err, _ := m.parses.Do(locale, func() (any, error) {
		// a caller that lost the race may arrive after the insert
		if b, ok := m.cached(locale); ok {
			return b, nil
		}
		b, err := m.load(locale)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.bundles[locale] = b
		m.mu.Unlock()
		return b, nil
	})
	if err != nil {
		panic(err)
	}
	return v.(*Bundle)
}

func (m *ResourceManager) cached(locale string) (*Bundle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bundles[locale]
	return b, ok
}

func (m *ResourceManager) load(locale string) (*Bundle, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	data, err := fs.ReadFile(m.fsys, path.Join(localeDir, locale+".po"))
	if err != nil {
		return nil, fmt.Errorf("i18n: no resource for locale %q: %w", locale, err)
	}
	po := gotext.NewPo()
	po.Parse(data)
	metrics.BundleParses.WithLabelValues(locale).Inc()
	return newBundle(locale, tag, po), nil
}

// Locales lists the embedded locales, sorted.
func (m *ResourceManager) Locales() []string {
	entries, err := fs.ReadDir(m.fsys, localeDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".po") {
			out = append(out, strings.TrimSuffix(name, ".po"))
		}
	}
	sort.Strings(out)
	return out
}
