package state

import "sync"

// Table stores one row of type V per key. All access goes through callbacks
// executed under the table lock, so callbacks must not block on I/O.
type Table[K comparable, V any] struct {
	mu   sync.Mutex
	rows map[K]*V
	init func() V
}

// NewTable constructs an empty table. init builds a fresh row on first update;
// a nil init yields zero-valued rows.
func NewTable[K comparable, V any](init func() V) *Table[K, V] {
	return &Table[K, V]{
		rows: make(map[K]*V),
		init: init,
	}
}

// Update runs fn against the row for key, creating it when missing.
func (t *Table[K, V]) Update(key K, fn func(*V)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[key]
	if !ok {
		row = t.newRow()
		t.rows[key] = row
	}
	fn(row)
}

// Peek runs fn against an existing row and reports whether it was found.
// Missing rows are not created.
func (t *Table[K, V]) Peek(key K, fn func(*V)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[key]
	if !ok {
		return false
	}
	if fn != nil {
		fn(row)
	}
	return true
}

// Delete drops the row for key.
func (t *Table[K, V]) Delete(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, key)
}

// Len returns the number of stored rows.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

func (t *Table[K, V]) newRow() *V {
	if t.init == nil {
		return new(V)
	}
	v := t.init()
	return &v
}
