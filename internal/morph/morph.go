// Package morph resolves Latin word forms to dictionary stems.
//
// Resolution goes through the Resolver interface so the external analyzer
// (Engine), an in-process lexicon (Dictionary) and caching wrappers are
// interchangeable.
package morph

import (
	"context"
	"errors"
	"strings"
)

// ErrEngine marks failures of the external analysis engine: a missing
// executable, an abnormal exit or unreadable output.
var ErrEngine = errors.New("morphology engine failure")

// Resolution is the outcome of analyzing a single word form.
type Resolution struct {
	Stem        string
	Substantive bool
}

// Known reports whether the analysis produced a usable stem.
func (r Resolution) Known() bool {
	return strings.TrimSpace(r.Stem) != ""
}

// Resolver analyzes one lowercase word form.
type Resolver interface {
	Resolve(ctx context.Context, word string) (Resolution, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, word string) (Resolution, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, word string) (Resolution, error) {
	return f(ctx, word)
}

// overrides corrects stems the analyzer is known to mis-resolve ("est"
// comes back as "edo").
var overrides = map[string]Resolution{
	"edo": {Stem: "sum", Substantive: true},
}

// ApplyOverrides replaces known mis-resolutions.
func ApplyOverrides(res Resolution) Resolution {
	if fixed, ok := overrides[res.Stem]; ok {
		return fixed
	}
	return res
}
