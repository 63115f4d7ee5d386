package table

// Table is a flat mapping from translation key to string that remembers the
// order in which keys were first seen.
type Table struct {
	keys   []string
	values map[string]string
}

// New creates an empty table
func New() *Table {
	return &Table{values: make(map[string]string)}
}

// FromPairs builds a table from alternating key/value arguments.
// It is mostly useful in tests.
func FromPairs(kv ...string) *Table {
	t := New()
	for i := 0; i+1 < len(kv); i += 2 {
		t.Set(kv[i], kv[i+1])
	}
	return t
}

// Set stores value under key. Existing keys keep their position.
func (t *Table) Set(key, value string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value stored under key
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present, regardless of its value
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// IsEmpty reports whether key is missing or holds a zero-length string
func (t *Table) IsEmpty(key string) bool {
	return t.values[key] == ""
}

// Keys returns the keys in encounter order
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of keys
func (t *Table) Len() int {
	return len(t.keys)
}

// Merge copies every key of other into t, overriding existing values.
func (t *Table) Merge(other *Table) {
	for _, k := range other.keys {
		t.Set(k, other.values[k])
	}
}

// Clone returns an independent copy of the table
func (t *Table) Clone() *Table {
	c := New()
	c.Merge(t)
	return c
}

// Equal reports whether both tables hold the same keys in the same order
// with the same values.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for i, k := range t.keys {
		if other.keys[i] != k || other.values[k] != t.values[k] {
			return false
		}
	}
	return true
}
