// Package tfidf ranks short text documents against a set of preference
// tokens by cosine similarity of TF-IDF weighted vectors.
//
// The package is pure: every call to Rank builds its own corpus statistics
// from the documents it is given and keeps nothing afterwards, so it is safe
// to call from any number of goroutines.
//
//	docs := []tfidf.Document{
//	    {ID: "p1", Text: "sepatu pria kulit hitam"},
//	    {ID: "p2", Text: "tas wanita kulit coklat"},
//	}
//	ids := tfidf.Rank(docs, []string{"sepatu", "kulit"}, 8)
//
// # Weighting
//
//	tf(t, d)  = raw count of t in d
//	idf(t)    = ln((N + 1) / df(t)),  df(t) = 0.5 when t is not in the corpus
//	w(t, d)   = tf(t, d) * idf(t)
//	score(d)  = cos(w(·, d), w(·, q))
//
// The query is weighted with the corpus IDF table, not its own.
package tfidf
