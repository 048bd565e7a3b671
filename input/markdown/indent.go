package markdown

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// listNesting tracks how list item indentation translates to nesting levels.
//
// Widths are kept in a sorted map, as a width without an exact match resolves
// to the level of the nearest lower width. Width 0 is always mapped to
// level 1.
type listNesting struct {
	levels   *treemap.Map // indentation width → nesting level
	level    int          // level of the item at the cursor, 0 if unset
	indent   int          // last committed indentation width
	maxLevel int          // deepest level assigned so far
}

func newListNesting() *listNesting {
	n := &listNesting{levels: treemap.NewWithIntComparator()}
	n.reset()
	return n
}

// reset forgets everything but width 0.
func (n *listNesting) reset() {
	n.levels.Clear()
	n.levels.Put(0, 1)
	n.level = 1
	n.indent = 0
	n.maxLevel = 1
}

// setBase maps width w to level 1 as well. It is used for top-level lists
// starting with an indented item.
func (n *listNesting) setBase(w int) {
	if w > 0 {
		n.levels.Put(w, 1)
	}
	n.indent = w
}

// resolve finds the nesting level for an item at indentation width w. The
// item is part of a list at level current. It returns the width actually
// matched, which is w itself unless w resolves to a lower recorded width.
func (n *listNesting) resolve(w int, current int) (width int, level int) {
	if l, found := n.levels.Get(w); found {
		return w, l.(int)
	}
	if maxw, _ := n.levels.Max(); maxw != nil && w > maxw.(int) {
		level = current + 1
		n.levels.Put(w, level)
		if level > n.maxLevel {
			n.maxLevel = level
		}
		return w, level
	}
	k, l := n.levels.Floor(w)
	if k == nil { // cannot happen while width 0 is present
		return 0, 1
	}
	return k.(int), l.(int)
}

// forget removes the entry for width w, unless w is 0.
func (n *listNesting) forget(w int) {
	if w != 0 {
		n.levels.Remove(w)
	}
}
