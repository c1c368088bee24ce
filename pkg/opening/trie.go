// Package opening builds a SAN-sequence prefix trie over a catalog of named
// openings and variations, and answers lookup/continuation queries against it.
package opening

import (
	"sort"

	"github.com/seekerror/stdlib/pkg/lang"
)

// BookMoveName is the sentinel opening name returned by Lookup when a
// position lies on more than one distinct named opening.
const BookMoveName = "Book Move"

// Opening names a position by the opening (and, when unambiguous, the
// variation) it belongs to.
type Opening struct {
	Name      string
	Variation lang.Optional[string]
}

// Entry is one row of the opening catalog: a named line and the SAN move
// sequence that reaches it.
type Entry struct {
	Name      string
	Variation lang.Optional[string]
	Moves     []string
}

// Node is one position in the trie: a SAN token away from its parent, holding
// the rolled-up set of openings every entry whose line passes through it
// belongs to.
type Node struct {
	children map[string]*Node
	entries  map[string]taggedOpening // keyed by Name + "\x00" + variation, for roll-up dedup
}

type taggedOpening struct {
	key     string
	opening Opening
}

func newNode() *Node {
	return &Node{children: map[string]*Node{}, entries: map[string]taggedOpening{}}
}

// Build constructs a trie from a catalog of entries. For each entry, it walks
// from the root along the SAN sequence, creating child nodes as needed, and
// records the entry's Opening at every node visited along the way (the
// roll-up): every prefix position therefore knows the full set of named
// lines it lies on, not just the exact lines.
func Build(entries []Entry) *Node {
	root := newNode()
	for _, e := range entries {
		node := root
		op := Opening{Name: e.Name, Variation: e.Variation}
		key := openingKey(op)
		for _, move := range e.Moves {
			child, ok := node.children[move]
			if !ok {
				child = newNode()
				node.children[move] = child
			}
			child.entries[key] = taggedOpening{key: key, opening: op}
			node = child
		}
	}
	return root
}

func openingKey(op Opening) string {
	v, ok := op.Variation.V()
	if !ok {
		return op.Name + "\x00"
	}
	return op.Name + "\x00" + v
}

// Lookup walks sanSeq from the root and returns the opening the resulting
// position is known by, per the roll-up resolution rule: missing path or
// empty opening set yields None; more than one distinct opening name yields
// the "Book Move" sentinel; a single name with one variation yields that
// exact Opening; a single name with multiple variations yields the name
// alone.
func (root *Node) Lookup(sanSeq []string) (Opening, bool) {
	node := root
	for _, move := range sanSeq {
		child, ok := node.children[move]
		if !ok {
			return Opening{}, false
		}
		node = child
	}
	return node.rollup()
}

// Continuation is one child move from a trie position, paired with the
// opening that child position resolves to.
type Continuation struct {
	SAN        string
	Opening    Opening
	HasOpening bool
}

// Continuations returns every child move from the position reached by
// sanSeq, each paired with its own rolled-up opening.
func (root *Node) Continuations(sanSeq []string) ([]Continuation, bool) {
	node := root
	for _, move := range sanSeq {
		child, ok := node.children[move]
		if !ok {
			return nil, false
		}
		node = child
	}

	var out []Continuation
	for move, child := range node.children {
		op, ok := child.rollup()
		out = append(out, Continuation{SAN: move, Opening: op, HasOpening: ok})
	}
	return out, true
}

func (n *Node) rollup() (Opening, bool) {
	if len(n.entries) == 0 {
		return Opening{}, false
	}

	names := map[string]bool{}
	for _, te := range n.entries {
		names[te.opening.Name] = true
	}
	if len(names) > 1 {
		return Opening{Name: BookMoveName}, true
	}

	var name string
	for n := range names {
		name = n
	}

	variations := map[string]bool{}
	var sole Opening
	for _, te := range n.entries {
		v, ok := te.opening.Variation.V()
		key := ""
		if ok {
			key = v
		}
		variations[key] = true
		sole = te.opening
	}
	if len(variations) == 1 {
		return sole, true
	}
	return Opening{Name: name}, true
}

// GetAllOpenings returns the sorted set of distinct opening names present
// anywhere in the trie. Entries named with the "Book Move" sentinel are
// skipped, so it never appears here.
func (root *Node) GetAllOpenings() []string {
	names := map[string]bool{}
	root.walk(func(n *Node) {
		for _, te := range n.entries {
			if te.opening.Name == BookMoveName {
				continue
			}
			names[te.opening.Name] = true
		}
	})
	return sortedKeys(names)
}

// GetVariationsFor returns the sorted set of variation names associated with
// the given opening name anywhere in the trie. Entries with no variation are
// not represented (there is no "no variation" string to sort in).
func (root *Node) GetVariationsFor(name string) []string {
	variations := map[string]bool{}
	root.walk(func(n *Node) {
		for _, te := range n.entries {
			if te.opening.Name != name {
				continue
			}
			if v, ok := te.opening.Variation.V(); ok {
				variations[v] = true
			}
		}
	})
	return sortedKeys(variations)
}

// walk visits every node in the trie exactly once, in no particular order.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.walk(fn)
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// participates reports whether any opening entry at n matches name and,
// when variation holds a value, also matches that exact variation.
func (n *Node) participates(name string, variation lang.Optional[string]) bool {
	want, wantSome := variation.V()
	for _, te := range n.entries {
		if te.opening.Name != name {
			continue
		}
		if !wantSome {
			return true
		}
		if v, ok := te.opening.Variation.V(); ok && v == want {
			return true
		}
	}
	return false
}

// PathEntry is one position along a played line in the trie: the SAN move
// that led to it (empty at the root), and its rolled-up opening, if any.
type PathEntry struct {
	SAN        string
	Opening    Opening
	HasOpening bool
}

// Path walks sanHistory from the root and returns one PathEntry per position
// visited, including the root (with an empty SAN). complete is false if
// sanHistory leaves the trie partway through, in which case path covers only
// the prefix that stayed on the trie.
func (root *Node) Path(sanHistory []string) (path []PathEntry, complete bool) {
	op, ok := root.rollup()
	path = append(path, PathEntry{Opening: op, HasOpening: ok})

	node := root
	for _, move := range sanHistory {
		child, ok := node.children[move]
		if !ok {
			return path, false
		}
		node = child
		op, ok := node.rollup()
		path = append(path, PathEntry{SAN: move, Opening: op, HasOpening: ok})
	}
	return path, true
}

// AvailableMoves returns the children of the trie node at position
// currentMoveCount along sanHistory, excluding the move actually played next
// in sanHistory (if any) — the continuations the UI should offer as
// unplayed alternatives to the line as played.
func (root *Node) AvailableMoves(sanHistory []string, currentMoveCount int) ([]Continuation, bool) {
	if currentMoveCount < 0 || currentMoveCount > len(sanHistory) {
		return nil, false
	}

	node := root
	for _, move := range sanHistory[:currentMoveCount] {
		child, ok := node.children[move]
		if !ok {
			return nil, false
		}
		node = child
	}

	var onPath string
	if currentMoveCount < len(sanHistory) {
		onPath = sanHistory[currentMoveCount]
	}

	var moves []string
	for move := range node.children {
		if move == onPath {
			continue
		}
		moves = append(moves, move)
	}
	sort.Strings(moves)

	out := make([]Continuation, 0, len(moves))
	for _, move := range moves {
		child := node.children[move]
		op, hasOp := child.rollup()
		out = append(out, Continuation{SAN: move, Opening: op, HasOpening: hasOp})
	}
	return out, true
}

// FilterPath restricts path to the entries whose node participates in the
// given (name, variation) focus: a node participates if any opening entry
// recorded at it matches name and, when variation holds a value, matches
// that variation exactly. Used by UI overlays to highlight only the portion
// of a played line belonging to a chosen opening.
func (root *Node) FilterPath(sanHistory []string, name string, variation lang.Optional[string]) []PathEntry {
	var out []PathEntry
	node := root
	if root.participates(name, variation) {
		out = append(out, PathEntry{Opening: Opening{Name: name, Variation: variation}, HasOpening: true})
	}
	for _, move := range sanHistory {
		child, ok := node.children[move]
		if !ok {
			break
		}
		node = child
		if node.participates(name, variation) {
			out = append(out, PathEntry{SAN: move, Opening: Opening{Name: name, Variation: variation}, HasOpening: true})
		}
	}
	return out
}
