package morph

import "context"

// Memo caches resolutions by word form for the lifetime of one ingestion
// call and applies ApplyOverrides to every fresh result. It is not safe for
// concurrent use.
type Memo struct {
	resolver Resolver
	seen     map[string]Resolution
	misses   int
}

// NewMemo wraps r.
func NewMemo(r Resolver) *Memo {
	return &Memo{resolver: r, seen: make(map[string]Resolution)}
}

// Resolve returns the cached resolution for word or asks the wrapped
// resolver. Errors are returned as-is and nothing is cached for them.
func (m *Memo) Resolve(ctx context.Context, word string) (Resolution, error) {
	if res, ok := m.seen[word]; ok {
		return res, nil
	}
	res, err := m.resolver.Resolve(ctx, word)
	if err != nil {
		return Resolution{}, err
	}
	res = ApplyOverrides(res)
	m.seen[word] = res
	m.misses++
	return res, nil
}

// Lookups reports how many words were passed to the wrapped resolver.
func (m *Memo) Lookups() int {
	return m.misses
}
