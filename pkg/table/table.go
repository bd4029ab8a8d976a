// Package table implements the open-addressing hash table used for both the
// VM's globals and its string-interning set, grounded in the original's
// table.c/table.h (linear probing, tombstones, 0.75 max load factor).
package table

import "github.com/kristofer/quill/pkg/object"

// maxLoad is the load factor above which the table grows. 0.75 matches the
// teacher lineage's table.c exactly.
const maxLoad = 0.75

// entry is one slot: Key nil with Tombstone false means never used; a
// deleted slot is a tombstone, Key nil with Tombstone true (Value is then
// unused/irrelevant).
type entry struct {
	Key       *object.ObjString
	Value     object.Value
	Tombstone bool
}

// Table is an open-addressing hash table keyed by interned *object.ObjString
// pointers. Because strings are interned, key comparison is pointer
// equality; probing still uses the string's precomputed FNV-1a hash.
type Table struct {
	count   int // live entries + tombstones
	entries []entry
}

// New returns an empty table. Capacity is allocated lazily on first Set.
func New() *Table {
	return &Table{}
}

// Count returns the number of live (non-tombstone) entries.
func (t *Table) Count() int {
	live := 0
	for i := range t.entries {
		if t.entries[i].Key != nil && !t.entries[i].Tombstone {
			live++
		}
	}
	return live
}

// Get returns the value stored for key and whether it was found.
func (t *Table) Get(key *object.ObjString) (object.Value, bool) {
	if len(t.entries) == 0 {
		return object.Value{}, false
	}
	e := findEntry(t.entries, key)
	if e.Key == nil {
		return object.Value{}, false
	}
	return e.Value, true
}

// Set stores value under key, growing the backing array first if doing so
// would exceed the 0.75 load factor. It returns true if this created a new
// key, false if it overwrote an existing one.
func (t *Table) Set(key *object.ObjString, value object.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.grow(growCapacity(len(t.entries)))
	}

	e := findEntry(t.entries, key)
	isNew := e.Key == nil
	if isNew && !e.Tombstone {
		t.count++
	}
	e.Key = key
	e.Value = value
	e.Tombstone = false
	return isNew
}

// Delete removes key, leaving a tombstone behind so later probes still find
// entries that were inserted after a collision with it.
func (t *Table) Delete(key *object.ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if e.Key == nil {
		return false
	}
	e.Key = nil
	e.Tombstone = true
	return true
}

// AddAll copies every live entry from src into t (mirrors the original's
// tableAddAll, used there for class method inheritance). Neither the VM
// nor grow calls it.
func (t *Table) AddAll(src *Table) {
	for i := range src.entries {
		e := &src.entries[i]
		if e.Key != nil && !e.Tombstone {
			t.Set(e.Key, e.Value)
		}
	}
}

// FindString looks up an interned string by raw content and hash without
// allocating an ObjString, which is exactly how the VM checks "have I
// already interned this text" before allocating a new one.
func (t *Table) FindString(chars string, hash uint32) *object.ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	index := hash & mask
	for {
		e := &t.entries[index]
		if e.Key == nil {
			if !e.Tombstone {
				return nil
			}
		} else if e.Key.Hash == hash && e.Key.Chars == chars {
			return e.Key
		}
		index = (index + 1) & mask
	}
}

func findEntry(entries []entry, key *object.ObjString) *entry {
	mask := uint32(len(entries) - 1)
	index := key.Hash & mask
	var tombstone *entry
	for {
		e := &entries[index]
		if e.Key == nil {
			if !e.Tombstone {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		} else if e.Key == key {
			return e
		}
		index = (index + 1) & mask
	}
}

func (t *Table) grow(newCap int) {
	old := t.entries
	t.entries = make([]entry, newCap)
	t.count = 0
	for i := range old {
		e := &old[i]
		if e.Key == nil {
			continue
		}
		dst := findEntry(t.entries, e.Key)
		dst.Key = e.Key
		dst.Value = e.Value
		t.count++
	}
}

// growCapacity implements the 0 -> 8 -> 16 -> 32 -> ... doubling sequence
// shared with pkg/chunk and the original's GROW_CAPACITY macro.
func growCapacity(current int) int {
	if current < 8 {
		return 8
	}
	return current * 2
}

// Intern returns the single ObjString this VM uses for chars, allocating
// and registering one if this is the first time chars has been seen. t is
// the VM-wide interning table; callers never construct ObjString directly
// (see object.NewString's doc comment).
func Intern(t *Table, chars string) *object.ObjString {
	hash := object.HashString(chars)
	if s := t.FindString(chars, hash); s != nil {
		return s
	}
	s := &object.ObjString{Chars: chars, Hash: hash}
	t.Set(s, object.Null)
	return s
}
