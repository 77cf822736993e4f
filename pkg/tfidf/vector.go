package tfidf

import "math"

// Term is one non-zero dimension of a sparse vector.
type Term struct {
	Word   string
	Weight float64
}

// Vector is a sparse TF-IDF vector. Absent terms are zero.
// Terms are kept in first-occurrence order so sums are reproducible.
type Vector []Term

// Norm returns the Euclidean norm over all terms of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, t := range v {
		sum += t.Weight * t.Weight
	}
	return math.Sqrt(sum)
}

// Weights returns v as a term -> weight lookup.
func (v Vector) Weights() map[string]float64 {
	m := make(map[string]float64, len(v))
	for _, t := range v {
		m[t.Word] = t.Weight
	}
	return m
}

// Cosine returns the cosine similarity of doc and query, or 0 when either
// vector has zero norm.
func Cosine(doc, query Vector) float64 {
	return newScorer(query).score(doc)
}

// scorer caches the query lookup and norm so each document costs one pass.
type scorer struct {
	weights map[string]float64
	norm    float64
}

func newScorer(query Vector) scorer {
	return scorer{weights: query.Weights(), norm: query.Norm()}
}

func (s scorer) score(doc Vector) float64 {
	var dot, sum float64
	for _, t := range doc {
		dot += t.Weight * s.weights[t.Word]
		sum += t.Weight * t.Weight
	}

	denom := math.Sqrt(sum) * s.norm
	if denom == 0 {
		return 0
	}
	return dot / denom
}
