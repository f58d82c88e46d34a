package ll

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NullableTable records which symbols may derive the empty string.
// Entries only ever flip from false to true.
type NullableTable struct {
	nullable map[string]bool
}

func newNullableTable() *NullableTable {
	return &NullableTable{nullable: map[string]bool{Epsilon: true}}
}

// IsNullable is true if sym is known to derive the empty string.
func (nt *NullableTable) IsNullable(sym string) bool {
	return nt.nullable[sym]
}

// MarkNullable marks sym as nullable. It returns true if this changed the table.
func (nt *NullableTable) MarkNullable(sym string) bool {
	if nt.nullable[sym] {
		return false
	}
	nt.nullable[sym] = true
	return true
}

// Symbols returns the nullable symbols, sorted.
func (nt *NullableTable) Symbols() []string {
	syms := make([]string, 0, len(nt.nullable))
	for sym := range nt.nullable {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}

func (nt *NullableTable) clone() *NullableTable {
	return &NullableTable{nullable: maps.Clone(nt.nullable)}
}

// --- Symbol sets -----------------------------------------------------------

// SymbolSets maps symbols to growing sets of terminals. It is used for FIRST
// and FOLLOW tables. There is no operation to remove an entry from a set.
type SymbolSets struct {
	sets map[string]*treeset.Set
}

func newSymbolSets() *SymbolSets {
	return &SymbolSets{sets: make(map[string]*treeset.Set)}
}

func (s *SymbolSets) set(sym string) *treeset.Set {
	set, ok := s.sets[sym]
	if !ok {
		set = treeset.NewWith(utils.StringComparator)
		s.sets[sym] = set
	}
	return set
}

// Add puts terminal t into the set for sym. It returns true if the set grew.
func (s *SymbolSets) Add(sym string, t string) bool {
	set := s.set(sym)
	if set.Contains(t) {
		return false
	}
	set.Add(t)
	return true
}

// Union adds all of terms to the set for sym. It returns true if the set grew.
func (s *SymbolSets) Union(sym string, terms []string) bool {
	return s.UnionExcept(sym, terms, "")
}

// UnionExcept adds all of terms except one to the set for sym. It returns
// true if the set grew. Usually except is Epsilon.
func (s *SymbolSets) UnionExcept(sym string, terms []string, except string) bool {
	changed := false
	for _, t := range terms {
		if t != except && s.Add(sym, t) {
			changed = true
		}
	}
	return changed
}

// Set returns the terminals for sym in lexicographic order.
func (s *SymbolSets) Set(sym string) []string {
	set, ok := s.sets[sym]
	if !ok {
		return nil
	}
	return stringValues(set)
}

// Contains is true if t is in the set for sym.
func (s *SymbolSets) Contains(sym string, t string) bool {
	set, ok := s.sets[sym]
	return ok && set.Contains(t)
}

// Size returns the number of terminals in the set for sym.
func (s *SymbolSets) Size(sym string) int {
	if set, ok := s.sets[sym]; ok {
		return set.Size()
	}
	return 0
}

// Symbols returns all symbols with a set, sorted.
func (s *SymbolSets) Symbols() []string {
	syms := make([]string, 0, len(s.sets))
	for sym := range s.sets {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}

func (s *SymbolSets) clone() *SymbolSets {
	c := newSymbolSets()
	for sym, set := range s.sets {
		c.sets[sym] = treeset.NewWith(utils.StringComparator, set.Values()...)
	}
	return c
}
