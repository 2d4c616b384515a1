// Package match implements the lexical matching primitives used for intent
// scoring and guard evaluation: tokenization, bidirectional synonym
// expansion, and token-set overlap. Everything here is pure; the synonym
// table is an immutable value injected where needed, never package state.
package match

import (
	"strings"
	"unicode"
)

// Set is an expanded token set.
type Set map[string]struct{}

// Add inserts a token.
func (s Set) Add(tok string) { s[tok] = struct{}{} }

// Has reports membership.
func (s Set) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Tokenize lowercases text, splits on every non-alphanumeric rune, and drops
// tokens of length <= 2. Duplicates are removed so overlap counts distinct
// tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) <= 2 {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Table is a precomputed bidirectional synonym adjacency: every token maps
// to its full expansion set, built once at construction. A token that is a
// group key expands to its whole group; a token inside any group expands to
// that group's key and the whole group. Lookups never rescan the group
// definitions.
type Table struct {
	adj map[string]Set
}

// NewTable precomputes the adjacency for the given synonym groups. The
// groups map is read once and not retained.
func NewTable(groups map[string][]string) *Table {
	t := &Table{adj: make(map[string]Set, len(groups))}
	for key, syns := range groups {
		members := make([]string, 0, len(syns)+1)
		members = append(members, strings.ToLower(key))
		for _, s := range syns {
			members = append(members, strings.ToLower(s))
		}
		for _, m := range members {
			set, ok := t.adj[m]
			if !ok {
				set = make(Set, len(members))
				t.adj[m] = set
			}
			for _, other := range members {
				set.Add(other)
			}
		}
	}
	return t
}

// Expand returns the union of every token's expansion set. Tokens missing
// from the table expand to themselves. A nil table performs no expansion.
func (t *Table) Expand(tokens []string) Set {
	out := make(Set, len(tokens))
	for _, tok := range tokens {
		out.Add(tok)
		if t == nil {
			continue
		}
		for syn := range t.adj[tok] {
			out.Add(syn)
		}
	}
	return out
}

// ExpandText tokenizes and expands in one step.
func (t *Table) ExpandText(text string) Set {
	return t.Expand(Tokenize(text))
}

// Overlap counts the tokens two sets share.
func Overlap(a, b Set) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if b.Has(tok) {
			n++
		}
	}
	return n
}
