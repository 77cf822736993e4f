package tfidf

import "math"

// unseenDocFreq is the document frequency assumed for a term that no corpus
// document contains. It keeps query-only terms finite and heavily weighted.
const unseenDocFreq = 0.5

// Corpus holds document frequencies for one ranking call.
type Corpus struct {
	docFreq map[string]int
	size    int
}

// NewCorpus counts, for every term, how many of the tokenized documents
// contain it at least once. An empty corpus is treated as having one document.
func NewCorpus(tokenized [][]string) *Corpus {
	c := &Corpus{
		docFreq: make(map[string]int),
		size:    len(tokenized),
	}
	if c.size == 0 {
		c.size = 1
	}

	for _, tokens := range tokenized {
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			c.docFreq[t]++
		}
	}
	return c
}

// Size returns N as used by IDF (never less than 1).
func (c *Corpus) Size() int { return c.size }

// DocFreq returns the number of documents containing term.
func (c *Corpus) DocFreq(term string) int { return c.docFreq[term] }

// IDF returns ln((N + 1) / df).
func (c *Corpus) IDF(term string) float64 {
	df := float64(c.docFreq[term])
	if df == 0 {
		df = unseenDocFreq
	}
	return math.Log(float64(c.size+1) / df)
}

// Vectorize weights each distinct token by its raw count times its IDF.
// Terms keep the order of their first occurrence.
func (c *Corpus) Vectorize(tokens []string) Vector {
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	v := make(Vector, len(order))
	for i, t := range order {
		v[i] = Term{Word: t, Weight: float64(counts[t]) * c.IDF(t)}
	}
	return v
}
