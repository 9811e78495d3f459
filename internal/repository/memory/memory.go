// Package memory provides mutex-guarded in-memory implementations of every
// repository interface. It is the default engine when no DATABASE_URL is
// configured and the standard double for service tests. Ids are serial and
// iteration follows insertion order.
package memory

import "sync"

// table is a tiny ordered map: serial ids, insertion-order iteration.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]*T
	order  []int64
	nextID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]*T), nextID: 1}
}

func (t *table[T]) insert(row *T) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.rows[id] = row
	t.order = append(t.order, id)
	return id
}

func (t *table[T]) get(id int64) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// scan calls fn for each row in insertion order.
func (t *table[T]) scan(fn func(id int64, row *T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		fn(id, t.rows[id])
	}
}

// withRow runs fn against the live row under the write lock.
func (t *table[T]) withRow(id int64, fn func(row *T)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return false
	}
	fn(row)
	return true
}
