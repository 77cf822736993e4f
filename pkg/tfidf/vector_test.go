package tfidf

import (
	"math"
	"testing"
)

func TestCosine_Identical(t *testing.T) {
	v := Vector{{"a", 1.5}, {"b", 2}}
	if got := Cosine(v, v); math.Abs(got-1) > 1e-12 {
		t.Errorf("Cosine(v, v) = %f, want 1", got)
	}
}

func TestCosine_Disjoint(t *testing.T) {
	a := Vector{{"a", 1}}
	b := Vector{{"b", 1}}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine = %f, want 0", got)
	}
}

func TestCosine_ZeroNorm(t *testing.T) {
	v := Vector{{"a", 1}}
	tests := []struct {
		name       string
		doc, query Vector
	}{
		{"empty doc", nil, v},
		{"empty query", v, nil},
		{"both empty", nil, nil},
		{"zero weights", Vector{{"a", 0}}, v},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.doc, tt.query)
			if got != 0 || math.IsNaN(got) {
				t.Errorf("Cosine = %f, want 0", got)
			}
		})
	}
}

func TestCosine_DocNormIncludesUnmatchedTerms(t *testing.T) {
	doc := Vector{{"a", 3}, {"b", 4}}
	query := Vector{{"a", 1}}
	// dot = 3, |doc| = 5, |query| = 1
	if got := Cosine(doc, query); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("Cosine = %f, want 0.6", got)
	}
}

func TestCosine_QueryNormIncludesUnmatchedTerms(t *testing.T) {
	doc := Vector{{"a", 1}}
	query := Vector{{"a", 3}, {"zzz", 4}}
	// dot = 3, |doc| = 1, |query| = 5
	if got := Cosine(doc, query); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("Cosine = %f, want 0.6", got)
	}
}

func TestVector_Norm(t *testing.T) {
	v := Vector{{"a", 3}, {"b", 4}}
	if got := v.Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %f, want 5", got)
	}
}
