// Package cache memoizes (action, normalized-parameters) → answer mappings
// so repeated or rephrased questions skip graph traversal. Keys are built
// from resolver-normalized values, so two phrasings resolving to the same
// entities share an entry. The whole cache is subordinate to one graph
// snapshot: a reload must Purge it wholesale, never selectively.
package cache

import (
	"context"
	"strings"
)

// Cache is the response cache contract. Implementations must be safe for
// concurrent use; racing writers for the same key may land in either order.
type Cache[V any] interface {
	// Get returns the cached value for key, reporting a miss with false
	Get(ctx context.Context, key string) (V, bool)
	// Put stores value under key, evicting older entries if bounded
	Put(ctx context.Context, key string, value V) error
	// Purge discards every entry; called on graph reload
	Purge(ctx context.Context) error
	// Len reports the current entry count
	Len(ctx context.Context) int
}

// Key builds a cache key from an action name and its normalized parameter
// values in a fixed order.
func Key(action string, normalizedParams ...string) string {
	parts := append([]string{action}, normalizedParams...)
	return strings.Join(parts, "|")
}
