// Package dlfindex embeds the dlfindex indexer in a Go program without the HTTP API.
//
// The client talks to the same search engine and relational store as the server:
//
//	client, _ := dlfindex.New(ctx,
//	    dlfindex.WithRedis("localhost:6379", ""),
//	    dlfindex.WithRelational("data/dlfindex.db"),
//	)
//	defer client.Close()
//
//	core, _ := client.CreateCore(ctx, "music")
//	_ = client.SaveDocument(ctx, &dlfindex.Document{UID: 1001, Location: "https://example.org/1001.xml"})
//	_, _ = client.Index(ctx, 1001, core)
//	res, _ := client.Search(ctx, dlfindex.SearchRequest{Core: core, Query: "Sonate"})
//	item, _ := client.Media(ctx, 1001, "2", nil)
package dlfindex
