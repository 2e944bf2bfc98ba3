package highlight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// stubHighlighter is a canned highlighter for registry and provider
// tests.
type stubHighlighter struct {
	lang  string
	exts  []string
	spans []Span
	calls int
}

func (s *stubHighlighter) HighlightLine(text string, index int) []Span {
	s.calls++
	return s.spans
}

func (s *stubHighlighter) Language() string         { return s.lang }
func (s *stubHighlighter) FileExtensions() []string { return s.exts }

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	h := &stubHighlighter{lang: "fake", exts: []string{".fk", ".fake"}}
	r.Register(h)

	got, ok := r.GetByLanguage("fake")
	require.True(t, ok)
	assert.Same(t, h, got.(*stubHighlighter))

	got, ok = r.GetByExtension(".fk")
	require.True(t, ok)
	assert.Same(t, h, got.(*stubHighlighter))

	// Lookup without the leading dot works too.
	got, ok = r.GetByExtension("fake")
	require.True(t, ok)
	assert.Same(t, h, got.(*stubHighlighter))
}

func TestRegistryMisses(t *testing.T) {
	r := NewRegistry()

	_, ok := r.GetByLanguage("nope")
	assert.False(t, ok)
	_, ok = r.GetByExtension(".nope")
	assert.False(t, ok)
	_, ok = r.GetByExtension("")
	assert.False(t, ok)
}

func TestRegistryLanguages(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubHighlighter{lang: "one", exts: []string{".one"}})
	r.Register(&stubHighlighter{lang: "two", exts: []string{".two"}})

	langs := r.Languages()
	assert.Len(t, langs, 2)
	assert.Contains(t, langs, "one")
	assert.Contains(t, langs, "two")
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.NotNil(t, r)
	assert.Same(t, r, DefaultRegistry())

	h, ok := r.GetByExtension(".go")
	require.True(t, ok)
	assert.Equal(t, "go", h.Language())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var g errgroup.Group

	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			lang := fmt.Sprintf("lang%d", i)
			r.Register(&stubHighlighter{lang: lang, exts: []string{"." + lang}})
			for j := 0; j < 100; j++ {
				r.GetByExtension("." + lang)
				r.GetByLanguage(lang)
				r.Languages()
			}
			if _, ok := r.GetByLanguage(lang); !ok {
				return fmt.Errorf("lost registration for %s", lang)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, r.Languages(), 8)
}
