package morph

import (
	"context"
	"fmt"
)

// Cache persists resolutions across runs. Source identifies the resolver
// that produced an entry so results from different analyzers never mix.
type Cache interface {
	Lookup(ctx context.Context, source, word string) (Resolution, bool, error)
	Save(ctx context.Context, source, word string, res Resolution) error
}

// CachedResolver consults a Cache before the wrapped resolver and records
// every successful result.
type CachedResolver struct {
	Resolver Resolver
	Cache    Cache
	Source   string
}

// Resolve implements Resolver.
func (c *CachedResolver) Resolve(ctx context.Context, word string) (Resolution, error) {
	res, ok, err := c.Cache.Lookup(ctx, c.Source, word)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to read analysis cache: %w", err)
	}
	if ok {
		return res, nil
	}
	res, err = c.Resolver.Resolve(ctx, word)
	if err != nil {
		return Resolution{}, err
	}
	if err := c.Cache.Save(ctx, c.Source, word, res); err != nil {
		return Resolution{}, fmt.Errorf("failed to write analysis cache: %w", err)
	}
	return res, nil
}
