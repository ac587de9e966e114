package types

// DefaultMap is a generic map wrapper that materializes default values for
// missing keys, removing the need for key existence checks at call sites.
//
// Example:
//
//	m := NewDefaultMap[string, []int](func() []int { return nil })
//	positions := m.Get("0xabc") // nil slice if "0xabc" was never set
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap creates a DefaultMap whose missing keys are initialized with
// the value produced by defaultFunc.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get retrieves the value for key. If the key is absent, the default value is
// generated, stored, and returned.
func (d *DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Set assigns val to key, overwriting any previous value.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Len returns the number of keys currently stored.
func (d *DefaultMap[K, V]) Len() int {
	return len(d.data)
}

// ToMap exposes the underlying map for iteration or bulk operations.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
