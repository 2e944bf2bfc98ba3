package highlight

// Provider wraps a Highlighter with a per-line span cache. One
// Provider belongs to one Editor on one goroutine, so it carries no
// lock; it is the invalidation hook the editor signals after every
// mutation.
type Provider struct {
	highlighter Highlighter

	// lineCache caches highlighted lines keyed by line index
	lineCache map[int]*cachedLine

	// maxCacheSize limits the cache size
	maxCacheSize int
}

// cachedLine holds cached highlighting for a line.
type cachedLine struct {
	text  string // original text, for cache validation
	spans []Span
}

// NewProvider creates a provider for a highlighter, which may be nil
// for plain text.
func NewProvider(h Highlighter, maxCache int) *Provider {
	if maxCache <= 0 {
		maxCache = 1000
	}
	return &Provider{
		highlighter:  h,
		lineCache:    make(map[int]*cachedLine),
		maxCacheSize: maxCache,
	}
}

// SetHighlighter swaps the active highlighter and drops the cache.
func (p *Provider) SetHighlighter(h Highlighter) {
	p.highlighter = h
	p.clearCache()
}

// Highlighter returns the active highlighter, or nil.
func (p *Provider) Highlighter() Highlighter {
	return p.highlighter
}

// HighlightLine returns spans for one line, filling the cache on miss.
// A stale cache entry (the text changed) is recomputed.
func (p *Provider) HighlightLine(text string, line int) []Span {
	if p.highlighter == nil {
		return nil
	}
	if cached, ok := p.lineCache[line]; ok && cached.text == text {
		return cached.spans
	}

	spans := p.highlighter.HighlightLine(text, line)
	if len(p.lineCache) >= p.maxCacheSize {
		p.evictCache()
	}
	p.lineCache[line] = &cachedLine{text: text, spans: spans}
	return spans
}

// InvalidateLine drops the cached spans for one line.
func (p *Provider) InvalidateLine(line int) {
	delete(p.lineCache, line)
}

// InvalidateCache drops the whole cache. This is the editor's
// Invalidator hook: any structural edit can renumber lines, so the
// conservative answer is to forget everything.
func (p *Provider) InvalidateCache() {
	p.clearCache()
}

func (p *Provider) evictCache() {
	toRemove := len(p.lineCache) / 4
	if toRemove < 10 {
		toRemove = 10
	}

	removed := 0
	for line := range p.lineCache {
		delete(p.lineCache, line)
		removed++
		if removed >= toRemove {
			break
		}
	}
}

func (p *Provider) clearCache() {
	p.lineCache = make(map[int]*cachedLine)
}
