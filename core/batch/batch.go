// Package batch implements the bounded fetch primitive every multi-hop
// metric walk is built on. Key sets of arbitrary size are chunked into
// windows that respect the store's IN-list ceiling.
package batch

import "context"

// FetchFunc loads the rows for one window of keys.
type FetchFunc[K comparable, R any] func(ctx context.Context, window []K) ([]R, error)

// Fetch splits keys into consecutive windows of at most size and invokes fn
// once per window, concatenating results in window order. Windows run
// sequentially. On the first window error, Fetch returns the rows collected
// so far together with that error, so callers can degrade on partial data.
// An empty key list returns an empty result without calling fn.
func Fetch[K comparable, R any](ctx context.Context, keys []K, size int, fn FetchFunc[K, R]) ([]R, error) {
	if size <= 0 {
		size = 1
	}

	results := make([]R, 0, len(keys))
	for start := 0; start < len(keys); start += size {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		end := min(start+size, len(keys))
		rows, err := fn(ctx, keys[start:end])
		results = append(results, rows...)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Dedupe returns keys with duplicates removed, preserving first-seen order.
func Dedupe[K comparable](keys []K) []K {
	seen := make(map[K]struct{}, len(keys))
	out := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Index builds a lookup map from rows, keyed by keyOf. Later rows with a
// duplicate key overwrite earlier ones.
func Index[K comparable, R any](rows []R, keyOf func(R) K) map[K]R {
	idx := make(map[K]R, len(rows))
	for _, r := range rows {
		idx[keyOf(r)] = r
	}
	return idx
}

// GroupBy buckets rows by keyOf, preserving row order within each bucket.
func GroupBy[K comparable, R any](rows []R, keyOf func(R) K) map[K][]R {
	buckets := make(map[K][]R)
	for _, r := range rows {
		key := keyOf(r)
		buckets[key] = append(buckets[key], r)
	}
	return buckets
}

// Keys collects the map keys of rows produced by keyOf, deduplicated in
// first-seen order. It is the usual bridge from one fetch hop to the next.
func Keys[K comparable, R any](rows []R, keyOf func(R) K) []K {
	keys := make([]K, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, keyOf(r))
	}
	return Dedupe(keys)
}
