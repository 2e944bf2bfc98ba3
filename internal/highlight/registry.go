package highlight

import (
	"sync"
)

// Registry manages available highlighters. It is the only shared state
// between editors: lookups take a read lock, registration a write
// lock, and the lock is never held while editors are built or torn
// down.
type Registry struct {
	mu sync.RWMutex

	// byLanguage maps language names to highlighters
	byLanguage map[string]Highlighter

	// byExtension maps file extensions (with dot) to highlighters
	byExtension map[string]Highlighter
}

// NewRegistry creates an empty highlighter registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Highlighter),
		byExtension: make(map[string]Highlighter),
	}
}

// Register adds a highlighter to the registry.
func (r *Registry) Register(h Highlighter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLanguage[h.Language()] = h
	for _, ext := range h.FileExtensions() {
		r.byExtension[ext] = h
	}
}

// GetByLanguage returns a highlighter for the given language.
func (r *Registry) GetByLanguage(language string) (Highlighter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byLanguage[language]
	return h, ok
}

// GetByExtension returns a highlighter for the given file extension.
func (r *Registry) GetByExtension(ext string) (Highlighter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ext == "" {
		return nil, false
	}
	if ext[0] != '.' {
		ext = "." + ext
	}

	h, ok := r.byExtension[ext]
	return h, ok
}

// Languages returns all registered language names.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		langs = append(langs, lang)
	}
	return langs
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// builtinLanguages lists the chroma languages preloaded into the
// default registry with the extensions they serve.
var builtinLanguages = []struct {
	name string
	exts []string
}{
	{"go", []string{".go"}},
	{"lua", []string{".lua"}},
	{"python", []string{".py"}},
	{"javascript", []string{".js"}},
	{"c", []string{".c", ".h"}},
	{"json", []string{".json"}},
	{"yaml", []string{".yaml", ".yml"}},
	{"toml", []string{".toml"}},
	{"markdown", []string{".md", ".markdown"}},
	{"bash", []string{".sh", ".bash"}},
}

// DefaultRegistry returns the shared registry preloaded with the
// built-in chroma highlighters. Languages chroma does not know are
// skipped.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, l := range builtinLanguages {
			h, err := NewChroma(l.name, l.exts...)
			if err != nil {
				continue
			}
			defaultRegistry.Register(h)
		}
	})
	return defaultRegistry
}
