package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NewHashmap builds a hash-map from alternating keys and values.
func NewHashmap(kvs ...Data) (*DHashmap, error) {
	if len(kvs)%2 != 0 {
		return nil, fmt.Errorf("hash-map needs an even number of forms; found %d", len(kvs))
	}

	m := &DHashmap{index: map[string]int{}}
	for i := 0; i < len(kvs); i += 2 {
		m.set(kvs[i], kvs[i+1])
	}
	return m, nil
}

func (m *DHashmap) set(k, v Data) {
	if m.index == nil {
		m.index = map[string]int{}
	}

	hk := hashKey(k)
	if i, ok := m.index[hk]; ok {
		m.vals[i] = v
		return
	}
	m.index[hk] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

func (m *DHashmap) Len() int {
	return len(m.keys)
}

func (m *DHashmap) Get(k Data) (Data, bool) {
	i, ok := m.index[hashKey(k)]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Each calls f for every entry in insertion order, stopping at the first error.
func (m *DHashmap) Each(f func(k, v Data) error) error {
	for i, k := range m.keys {
		if err := f(k, m.vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// MapValues returns a new hash-map with the same keys, in the same order,
// and every value replaced by f(value).
func (m *DHashmap) MapValues(f func(v Data) (Data, error)) (*DHashmap, error) {
	out := &DHashmap{
		index: make(map[string]int, len(m.keys)),
		keys:  make([]Data, 0, len(m.keys)),
		vals:  make([]Data, 0, len(m.keys)),
	}
	for i, k := range m.keys {
		v, err := f(m.vals[i])
		if err != nil {
			return nil, err
		}
		out.set(k, v)
	}
	return out, nil
}

// hashKey encodes d so that two values get the same key iff Equal(a, b).
// Functions only match themselves.
func hashKey(d Data) string {
	switch v := d.(type) {
	case *DNil:
		return "n"
	case *DBool:
		if v.Value {
			return "t"
		}
		return "f"
	case *DNumber:
		return "#" + strconv.FormatInt(v.Num, 10)
	case *DString:
		return "s" + strconv.Quote(v.Str)
	case *DSymbol:
		return "y" + strconv.Quote(v.Name)
	case *DKeyword:
		return "k" + strconv.Quote(v.Name)
	case *DList:
		return "(" + joinKeys(v.Members) + ")"
	case *DVector:
		return "[" + joinKeys(v.Members) + "]"
	case *DHashmap:
		entries := make([]string, 0, v.Len())
		for i, k := range v.keys {
			entries = append(entries, hashKey(k)+" "+hashKey(v.vals[i]))
		}
		sort.Strings(entries)
		return "{" + strings.Join(entries, " ") + "}"
	}
	return fmt.Sprintf("@%p", d)
}

func joinKeys(members []Data) string {
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = hashKey(m)
	}
	return strings.Join(keys, " ")
}
