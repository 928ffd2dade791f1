// Package cache provides memoization for compiled machines. Building a
// DFA walks the whole derivative closure, so hosts that repeatedly query
// the same language/alphabet pairs benefit from reusing the immutable
// result; machines are safe to share because they are never mutated after
// construction.
package cache

import (
	"crypto/sha256"
	"sort"
	"sync"

	"github.com/derivlab/go-deriv/dfa"
	"github.com/derivlab/go-deriv/regular"
)

// MachineCache caches built machines keyed by the reduced language's
// canonical form and the normalized alphabet.
type MachineCache struct {
	mu        sync.Mutex
	cache     map[string]*dfa.Machine
	order     []string // insertion order for FIFO eviction
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewMachineCache creates a cache with the specified maximum size.
// When the cache is full, the oldest entry is evicted (FIFO).
// Set maxSize to 0 for an unbounded cache.
func NewMachineCache(maxSize int) *MachineCache {
	return &MachineCache{
		cache:   make(map[string]*dfa.Machine),
		maxSize: maxSize,
	}
}

// cacheKey hashes the canonical reduced language together with the
// deduplicated, sorted alphabet. Reduction makes different spellings of
// the same reduced form share an entry.
func cacheKey(lang regular.Language, alphabet []rune) string {
	normalized := make([]rune, 0, len(alphabet))
	seen := make(map[rune]bool, len(alphabet))
	for _, c := range alphabet {
		if !seen[c] {
			seen[c] = true
			normalized = append(normalized, c)
		}
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })

	h := sha256.New()
	h.Write([]byte(regular.Canonical(regular.Reduce(lang))))
	h.Write([]byte{0})
	h.Write([]byte(string(normalized)))
	return string(h.Sum(nil))
}

// Get retrieves a cached machine, or nil when absent.
func (c *MachineCache) Get(lang regular.Language, alphabet []rune) *dfa.Machine {
	key := cacheKey(lang, alphabet)

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.cache[key]; ok {
		c.hits++
		return m
	}
	c.misses++
	return nil
}

// Put stores a machine in the cache.
func (c *MachineCache) Put(lang regular.Language, alphabet []rune, m *dfa.Machine) {
	key := cacheKey(lang, alphabet)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.cache[key]; exists {
		c.cache[key] = m
		return
	}
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
		c.evictions++
	}
	c.cache[key] = m
	c.order = append(c.order, key)
}

// GetOrBuild returns the cached machine for (lang, alphabet), building
// and caching it on a miss.
func (c *MachineCache) GetOrBuild(lang regular.Language, alphabet []rune) (*dfa.Machine, error) {
	if m := c.Get(lang, alphabet); m != nil {
		return m, nil
	}
	m, err := dfa.Build(lang, alphabet)
	if err != nil {
		return nil, err
	}
	c.Put(lang, alphabet, m)
	return m, nil
}

// Stats returns hit, miss and eviction counters.
func (c *MachineCache) Stats() (hits, misses, evictions int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions
}

// Len returns the number of cached machines.
func (c *MachineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Clear removes all entries and resets counters.
func (c *MachineCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*dfa.Machine)
	c.order = nil
	c.hits, c.misses, c.evictions = 0, 0, 0
}
