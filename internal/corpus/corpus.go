// Package corpus aggregates several text models into one collection.
package corpus

import (
	"fmt"
	"math"

	"github.com/verte-zerg/latintextid/internal/model"
)

// Corpus is a named set of documents with a merged aggregate model and
// per-stem document frequencies.
type Corpus struct {
	docs      []*model.TextModel
	aggregate *model.TextModel
	docFreq   map[string]int
}

// New creates an empty corpus.
func New(name string) *Corpus {
	return &Corpus{
		aggregate: model.New(name),
		docFreq:   map[string]int{},
	}
}

// Name returns the corpus name.
func (c *Corpus) Name() string {
	return c.aggregate.Name()
}

// Add merges m into the aggregate and records each of its stems once.
// The corpus keeps a reference to m; m must not be mutated afterwards.
func (c *Corpus) Add(m *model.TextModel) {
	c.docs = append(c.docs, m)
	c.aggregate.Merge(m)
	for stem, count := range m.Stems {
		if count > 0 {
			c.docFreq[stem]++
		}
	}
}

// Docs returns the documents in insertion order.
func (c *Corpus) Docs() []*model.TextModel {
	out := make([]*model.TextModel, len(c.docs))
	copy(out, c.docs)
	return out
}

// DocCount returns the number of documents.
func (c *Corpus) DocCount() int {
	return len(c.docs)
}

// DocFrequency returns how many documents contain stem.
func (c *Corpus) DocFrequency(stem string) int {
	return c.docFreq[stem]
}

// IDF returns log(N/df) for stem, or NaN when no document contains it.
func (c *Corpus) IDF(stem string) float64 {
	df := c.docFreq[stem]
	if df == 0 || len(c.docs) == 0 {
		return math.NaN()
	}
	return math.Log(float64(len(c.docs)) / float64(df))
}

// Aggregate returns the merged model of all documents.
func (c *Corpus) Aggregate() *model.TextModel {
	return c.aggregate
}

func (c *Corpus) String() string {
	return fmt.Sprintf("%snumber of documents: %d\n", c.aggregate.String(), len(c.docs))
}
