package tfidf

import (
	"sort"
	"strings"
)

// Document is the caller's projection of a catalog entry: an identifier and
// the concatenated text that should count toward matching.
type Document struct {
	ID   string
	Text string
}

// Scored is a ranked document identifier with its similarity score.
type Scored struct {
	ID    string
	Score float64
}

// Rank returns the ids of the topN documents most similar to queryTokens,
// best first. Equal scores keep input order, so with no usable query tokens
// the first topN documents come back unchanged.
func Rank(docs []Document, queryTokens []string, topN int) []string {
	scored := RankScored(docs, queryTokens, topN)
	ids := make([]string, len(scored))
	for i, s := range scored {
		ids[i] = s.ID
	}
	return ids
}

// RankScored is Rank with the scores attached.
// It never returns more than min(topN, len(docs)) entries and never fails.
func RankScored(docs []Document, queryTokens []string, topN int) []Scored {
	if topN <= 0 || len(docs) == 0 {
		return nil
	}

	tokenized := make([][]string, len(docs))
	for i := range docs {
		tokenized[i] = Tokenize(docs[i].Text)
	}
	corpus := NewCorpus(tokenized)

	query := newScorer(corpus.Vectorize(Tokenize(strings.Join(queryTokens, " "))))

	scored := make([]Scored, len(docs))
	for i := range docs {
		scored[i] = Scored{
			ID:    docs[i].ID,
			Score: query.score(corpus.Vectorize(tokenized[i])),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
