package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/die-net/lrucache"
)

// CachedFetcher memoizes successful provider answers in a byte-bounded LRU
// with a max age. Failures are never cached.
type CachedFetcher struct {
	Next  Fetcher
	Cache *lrucache.LruCache
}

// NewCachedFetcher wraps next with a cache of maxSizeMB megabytes whose
// entries expire after ttlSec seconds.
func NewCachedFetcher(next Fetcher, maxSizeMB, ttlSec int64) *CachedFetcher {
	return &CachedFetcher{
		Next:  next,
		Cache: lrucache.New(maxSizeMB<<20, ttlSec),
	}
}

func (f *CachedFetcher) Name() string { return f.Next.Name() }

func cacheKey(provider string, req FetchRequest) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", provider, req.Symbol, req.Start, req.End, req.Interval)
}

func (f *CachedFetcher) FetchDailyBars(ctx context.Context, req FetchRequest) (*RawResponse, error) {
	key := cacheKey(f.Next.Name(), req)
	if b, ok := f.Cache.Get(key); ok {
		var resp RawResponse
		if err := json.Unmarshal(b, &resp); err == nil {
			return &resp, nil
		}
		f.Cache.Delete(key)
	}

	resp, err := f.Next.FetchDailyBars(ctx, req)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return resp, nil
	}
	f.Cache.Set(key, b)
	return resp, nil
}
