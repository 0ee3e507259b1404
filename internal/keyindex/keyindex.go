// Package keyindex provides an insertion-ordered map from key tuples to values. Keys are
// bucketed by their xxhash and compared exactly within a bucket.
package keyindex

import (
	xxhash "github.com/cespare/xxhash/v2"
)

// Hash returns the hash of a key tuple. Elements are separated by a NUL byte, so
// ("ab", "c") and ("a", "bc") hash differently.
func Hash(key []string) uint64 {
	hasher := xxhash.New()
	for i, k := range key {
		if i > 0 {
			hasher.Write([]byte{0})
		}
		hasher.WriteString(k)
	}
	return hasher.Sum64()
}

type entry[V any] struct {
	key []string
	val V
}

// Index maps key tuples to values, remembering the order in which keys were first added
type Index[V any] struct {
	buckets map[uint64][]int
	entries []entry[V]
}

// New creates an empty Index
func New[V any]() *Index[V] {
	return &Index[V]{buckets: make(map[uint64][]int)}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (ix *Index[V]) find(h uint64, key []string) int {
	for _, i := range ix.buckets[h] {
		if equal(ix.entries[i].key, key) {
			return i
		}
	}
	return -1
}

// Get returns the value stored under key
func (ix *Index[V]) Get(key []string) (V, bool) {
	if i := ix.find(Hash(key), key); i >= 0 {
		return ix.entries[i].val, true
	}
	var zero V
	return zero, false
}

// Has returns true iff key is present
func (ix *Index[V]) Has(key []string) bool {
	return ix.find(Hash(key), key) >= 0
}

// Put stores val under key, replacing any previous value. It returns true iff the key is new.
func (ix *Index[V]) Put(key []string, val V) bool {
	p, created := ix.GetOrCreate(key, func() V { return val })
	if !created {
		*p = val
	}
	return created
}

// GetOrCreate returns a pointer to the value stored under key, creating it with create
// if the key is new. The pointer is valid until the next insertion.
func (ix *Index[V]) GetOrCreate(key []string, create func() V) (*V, bool) {
	h := Hash(key)
	if i := ix.find(h, key); i >= 0 {
		return &ix.entries[i].val, false
	}
	k := make([]string, len(key))
	copy(k, key)
	ix.entries = append(ix.entries, entry[V]{key: k, val: create()})
	i := len(ix.entries) - 1
	ix.buckets[h] = append(ix.buckets[h], i)
	return &ix.entries[i].val, true
}

// Len returns the number of distinct keys
func (ix *Index[V]) Len() int {
	return len(ix.entries)
}

// ForEach calls fn for every key, in order of first insertion, stopping at the first error
func (ix *Index[V]) ForEach(fn func(key []string, val V) error) error {
	for _, e := range ix.entries {
		if err := fn(e.key, e.val); err != nil {
			return err
		}
	}
	return nil
}
