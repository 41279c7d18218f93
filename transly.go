// Package transly is a batch text-translation pipeline.
//
// It takes an ordered list of records (line identifier plus source text),
// translates each distinct text through a pluggable provider, memoizes results
// in a bounded, time-expiring cache that survives process restarts, and hands
// the ordered results to an output writer.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/transly"
//	    "github.com/ZaguanLabs/transly/cache"
//	    "github.com/ZaguanLabs/transly/output"
//	    "github.com/ZaguanLabs/transly/provider"
//	    "github.com/ZaguanLabs/transly/source"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    store := cache.NewLRUCache(100, 30*24*time.Hour)
//	    snap := cache.NewFileSnapshot("translation_cache.json")
//	    if _, err := cache.Restore(ctx, store, snap); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    gw := transly.NewGateway(provider.NewGoogleProvider(provider.GoogleConfig{}))
//	    p := transly.NewPipeline("fr", gw,
//	        transly.WithCache(store),
//	        transly.WithPersister(cache.NewPersister(store, snap)),
//	    )
//
//	    report, err := p.Process(ctx,
//	        source.File("test.json"),
//	        output.NewJSONFile(output.PathFor("fr", "test.json")),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(report.Stats.Total)
//	}
package transly
