// Package store provides the small persistent keyed-collection primitives the bridge core's
// registries and queues are built from: an ordered primary map plus, where needed, a secondary
// index. This replaces the cw-storage-plus facade the original CosmWasm contract relied on
// (see DESIGN.md "store") with explicit Go types that make the
// serialization boundary (what's persisted, what's derived) visible at the call site.
package store

import "sort"

// Map is an ordered keyed collection: a primary key to value map plus an explicit key order,
// so paginated listing (§6 Query surface) is deterministic without depending on Go's
// unordered map iteration.
type Map[K comparable, V any] struct {
	values map[K]V
	order  []K
}

// NewMap returns an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Get returns the value at key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Set inserts or overwrites the value at key.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = value
}

// Delete removes key, if present.
func (m *Map[K, V]) Delete(key K) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.order)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Page returns up to limit values whose key sorts after startAfter (exclusive), using less to
// order keys, along with the last key returned (for the caller's next startAfter). This backs
// every paginated query in §6 (default/max limit bounding is the caller's responsibility).
func (m *Map[K, V]) Page(startAfter *K, limit int, less func(a, b K) bool) ([]V, *K) {
	keys := m.Keys()
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	start := 0
	if startAfter != nil {
		for i, k := range keys {
			if !less(k, *startAfter) && k != *startAfter {
				start = i
				break
			}
			if k == *startAfter {
				start = i + 1
			}
		}
	}

	var out []V
	var lastKey *K
	for i := start; i < len(keys) && len(out) < limit; i++ {
		v := m.values[keys[i]]
		out = append(out, v)
		k := keys[i]
		lastKey = &k
	}
	return out, lastKey
}

// Index is a secondary, non-unique-at-write-time index from an index key to a single primary
// key. The registry packages use it to enforce uniqueness (e.g. HostToken.XRPLCurrency) by
// checking Index.Lookup returns no existing owner other than the record being updated.
type Index[IK comparable, PK comparable] struct {
	byIndexKey map[IK]PK
}

// NewIndex returns an empty Index.
func NewIndex[IK comparable, PK comparable]() *Index[IK, PK] {
	return &Index[IK, PK]{byIndexKey: make(map[IK]PK)}
}

// Lookup returns the primary key stored under indexKey, if any.
func (idx *Index[IK, PK]) Lookup(indexKey IK) (PK, bool) {
	pk, ok := idx.byIndexKey[indexKey]
	return pk, ok
}

// Set associates indexKey with primaryKey, overwriting any prior association.
func (idx *Index[IK, PK]) Set(indexKey IK, primaryKey PK) {
	idx.byIndexKey[indexKey] = primaryKey
}

// Delete removes the association at indexKey.
func (idx *Index[IK, PK]) Delete(indexKey IK) {
	delete(idx.byIndexKey, indexKey)
}
