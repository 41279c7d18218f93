package transly_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/cache"
	"github.com/ZaguanLabs/transly/jsonmap"
	"github.com/ZaguanLabs/transly/provider"
	"github.com/ZaguanLabs/transly/source"
)

// Benchmarks for performance validation

func BenchmarkCacheKey(b *testing.B) {
	text := "Hello World, this is a sample text for the cache key"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		transly.CacheKey(text, "en", "es_ES")
	}
}

func BenchmarkParseCacheKey(b *testing.B) {
	key := transly.CacheKey("Hello World, this is a sample text for the cache key", "en", "es_ES")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		transly.ParseCacheKey(key)
	}
}

func BenchmarkLRUCache_Get(b *testing.B) {
	c := cache.NewLRUCache(transly.DefaultMaxEntries, transly.DefaultTTL)
	c.Put("test-key", "test-value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("test-key")
	}
}

func BenchmarkLRUCache_PutEvict(b *testing.B) {
	c := cache.NewLRUCache(transly.DefaultMaxEntries, transly.DefaultTTL)
	keys := make([]string, 1000)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(keys[i%len(keys)], "value")
	}
}

func BenchmarkReadCSV(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("first " + strconv.Itoa(i) + ",second,third\n")
	}
	data := sb.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		source.ReadCSV(strings.NewReader(data), false)
	}
}

func BenchmarkJSONMapEncode(b *testing.B) {
	pairs := make([]jsonmap.Pair, 100)
	for i := range pairs {
		pairs[i] = jsonmap.Pair{Key: transly.CacheKey("text "+strconv.Itoa(i), "en", "fr"), Value: "texte"}
	}
	var sb strings.Builder
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sb.Reset()
		jsonmap.Encode(&sb, pairs)
	}
}

func BenchmarkPipeline_Run_Cached(b *testing.B) {
	store := cache.NewLRUCache(transly.DefaultMaxEntries, transly.DefaultTTL)
	p := transly.NewPipeline("fr",
		transly.NewGateway(provider.NewMockProvider(), transly.WithGatewayLogger(quietLogger())),
		transly.WithCache(store),
		transly.WithLogger(quietLogger()),
	)

	records := make([]transly.Record, 50)
	for i := range records {
		records[i] = transly.Record{ID: "line_" + strconv.Itoa(i), Text: "text " + strconv.Itoa(i)}
	}
	ctx := context.Background()
	p.Run(ctx, records)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Run(ctx, records)
	}
}
