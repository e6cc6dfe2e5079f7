package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Params supplies values for {{name}} placeholders.
type Params = map[string]any

// Catalog translates message keys for the locale currently held by a Signal.
// Lookups fall back from the full code to its base language, then to
// DefaultLocale, and finally to the key itself.
type Catalog struct {
	signal   *Signal
	messages map[string]map[string]string

	// labels memoizes parameterless lookups; flushed on every locale change.
	labels *cache.Cache
	off    func()
}

// NewCatalog loads the built-in translations and follows signal.
func NewCatalog(signal *Signal) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return LoadCatalog(signal, sub)
}

// LoadCatalog reads every <code>.yaml file at the root of fsys.
func LoadCatalog(signal *Signal, fsys fs.FS) (*Catalog, error) {
	if signal == nil {
		signal = NewSignal(DefaultLocale)
	}
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	messages := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		flat := make(map[string]string)
		flatten("", raw, flat)
		code := strings.TrimSuffix(path.Base(name), path.Ext(name))
		messages[code] = flat
	}

	c := &Catalog{
		signal:   signal,
		messages: messages,
		labels:   cache.New(cache.NoExpiration, 0),
	}
	c.off = signal.On(c)
	return c, nil
}

// Close stops following the signal.
func (c *Catalog) Close() {
	if c.off != nil {
		c.off()
	}
}

// LocaleChanged implements Listener.
func (c *Catalog) LocaleChanged(string) {
	c.labels.Flush()
}

// Locale returns the active locale code.
func (c *Catalog) Locale() string {
	return c.signal.Current()
}

// Locales lists the available locale codes in sorted order.
func (c *Catalog) Locales() []string {
	codes := make([]string, 0, len(c.messages))
	for code := range c.messages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Supports reports whether code, or its base language, has a catalog.
func (c *Catalog) Supports(code string) bool {
	code = strings.TrimSpace(code)
	if _, ok := c.messages[code]; ok {
		return true
	}
	_, ok := c.messages[baseLanguage(code)]
	return ok
}

// T returns the message for key in the active locale with placeholders
// substituted. It never fails.
func (c *Catalog) T(key string, params ...Params) string {
	code := c.signal.Current()
	if len(params) == 0 {
		cacheKey := code + "\x00" + key
		if v, ok := c.labels.Get(cacheKey); ok {
			return v.(string)
		}
		msg := c.lookup(code, key)
		c.labels.Set(cacheKey, msg, cache.NoExpiration)
		return msg
	}
	return interpolate(c.lookup(code, key), params)
}

func (c *Catalog) lookup(code, key string) string {
	for _, candidate := range []string{code, baseLanguage(code), DefaultLocale} {
		if msgs, ok := c.messages[candidate]; ok {
			if msg, ok := msgs[key]; ok {
				return msg
			}
		}
	}
	return key
}

func baseLanguage(code string) string {
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return code[:i]
	}
	return code
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func interpolate(msg string, params []Params) string {
	var pairs []string
	for _, p := range params {
		for k, v := range p {
			pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
		}
	}
	if len(pairs) == 0 {
		return msg
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
