package index

import "sync"

// ConcurrentMap is a fixed-shard map used for lock-free-across-shards
// accumulation during parallel query evaluation. Each shard serializes
// access to its own slice of the key space via an independent mutex, so
// updates to keys that land on different shards proceed without
// contending on a single global lock.
type ConcurrentMap[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
}

type shard[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// NewConcurrentMap creates a ConcurrentMap with the given shard count. hash
// must distribute keys roughly evenly; callers deal only in the domain's
// DocId keys, so an identity-style hash is sufficient.
func NewConcurrentMap[K comparable, V any](shardCount int, hash func(K) uint64) *ConcurrentMap[K, V] {
	if shardCount < 1 {
		shardCount = 1
	}
	cm := &ConcurrentMap[K, V]{
		shards: make([]*shard[K, V], shardCount),
		hash:   hash,
	}
	for i := range cm.shards {
		cm.shards[i] = &shard[K, V]{m: make(map[K]V)}
	}
	return cm
}

func (cm *ConcurrentMap[K, V]) shardFor(key K) *shard[K, V] {
	idx := cm.hash(key) % uint64(len(cm.shards))
	return cm.shards[idx]
}

// Update atomically reads the current value for key (the zero value if
// absent) and replaces it with update's return value.
func (cm *ConcurrentMap[K, V]) Update(key K, update func(current V) V) {
	s := cm.shardFor(key)
	s.mu.Lock()
	s.m[key] = update(s.m[key])
	s.mu.Unlock()
}

// Erase removes key from the map, a no-op if key is absent.
func (cm *ConcurrentMap[K, V]) Erase(key K) {
	s := cm.shardFor(key)
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// EraseAll removes every key in keys, each under its own shard lock.
func (cm *ConcurrentMap[K, V]) EraseAll(keys []K) {
	for _, k := range keys {
		cm.Erase(k)
	}
}

// BuildOrdinaryMap acquires every shard in order and returns a single
// merged map snapshot of the ConcurrentMap's contents.
func (cm *ConcurrentMap[K, V]) BuildOrdinaryMap() map[K]V {
	out := make(map[K]V)
	for _, s := range cm.shards {
		s.mu.Lock()
		for k, v := range s.m {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}

// HashDocID is the canonical hash used for DocId keys: DocId is already a
// small dense non-negative integer, so it is its own hash.
func HashDocID(id int) uint64 {
	return uint64(id)
}
