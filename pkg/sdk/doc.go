// Package katalog provides an embedded Go client for the katalog
// recommendation service backed by Redis or Valkey.
//
// The client talks to the store directly, without the HTTP server, and
// exposes the same catalog, preference and recommendation operations:
//
//	client, _ := katalog.New(ctx, katalog.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _, _ = client.Catalog(katalog.KindFood).Upsert(ctx, "kopi-susu", katalog.ItemInput{
//	    Name:     "Es Kopi Susu",
//	    Category: "minuman",
//	    Price:    18000,
//	})
//	_, _ = client.Sessions().Cache(ctx, "s1", []string{"kopi"})
//	recs, _ := client.Recommendations().For(ctx, katalog.RecommendRequest{
//	    UserID:    "u1",
//	    SessionID: "s1",
//	})
//
// Stateless ranking over caller-held documents needs no store at all; use
// package tfidf directly.
package katalog
