/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the LL(1) parser table, where most (nonterminal, terminal)
cells stay empty. Every entry in the table is either a single int32 or a
pair (int32,int32); the second value is where a conflicting write ends up.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    intPair
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	m.checkBounds(i, j)
	if k, found := m.find(i, j); found {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), replacing both the primary and
// the secondary value.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.checkBounds(i, j)
	k, found := m.find(i, j)
	if found {
		m.values[k].value = intPair{value, m.nullval}
		return m
	}
	m.insert(k, triplet{row: i, col: j, value: intPair{value, m.nullval}})
	return m
}

// Add a value in the matrix at position (i,j). If the position is empty, value
// becomes the primary value. Otherwise it is stored as the secondary value,
// overwriting an earlier secondary value. The primary value is never touched by Add.
//
// Add returns true if position (i,j) already held a value.
func (m *IntMatrix) Add(i, j int, value int32) bool {
	m.checkBounds(i, j)
	k, found := m.find(i, j)
	if !found {
		m.insert(k, triplet{row: i, col: j, value: intPair{value, m.nullval}})
		return false
	}
	v := m.values[k].value
	if v.a == m.nullval {
		v.a = value
		m.values[k].value = v
		return false
	}
	v.b = value
	m.values[k].value = v
	return true
}

// Each calls f for every position set, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value.a, t.value.b)
	}
}

// find does a binary search for position (i,j). If it is not present, the
// returned index is the insertion point.
func (m *IntMatrix) find(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(n int) bool {
		return !m.values[n].storedLeftOf(i, j)
	})
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

func (m *IntMatrix) insert(at int, t triplet) {
	m.values = append(m.values, t)       // make room
	copy(m.values[at+1:], m.values[at:]) // shift remainder one index to the right
	m.values[at] = t
}

func (m *IntMatrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of bounds %dx%d", i, j, m.rowcnt, m.colcnt))
	}
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}
