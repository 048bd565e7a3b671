package markdown

import (
	"strings"
)

// Lists are nested by indentation only. Every list item, after writing its
// own content, looks at the line following it and decides what comes next:
//
//   - nothing, if the line is no list item or is indented too far (the
//     nesting level is left unset, which terminates all open lists)
//   - a sibling, if the item resolves to the same level and list type
//   - a nested list, if the item resolves to a deeper level
//   - the end of the current list, if the item resolves to a shallower level
//     or switches between ordered and unordered at the same level
//
// Decisions are communicated through the nesting level in p.lists, which is
// inspected by every open list on its way back up the call chain.

// topLevelList handles a list started by the block dispatcher. indent is
// the width of the spaces in front of the first marker.
func (p *parser) topLevelList(indent int) {
	n := p.lists
	n.setBase(indent)
	p.doc.pos += indent
	for n.level == 1 {
		kind, ok := p.doc.listKindAt(p.doc.pos)
		if !ok {
			break
		}
		p.list(kind, 1)
	}
	tracer().Debugf("list ended, max nesting level was %d", n.maxLevel)
	n.reset()
}

// list handles a list of kind at nesting level, with the cursor positioned at
// the marker of its first item.
func (p *parser) list(kind State, level int) {
	n := p.lists
	base := n.indent
	tag := "ul"
	if kind == OrderedList {
		tag = "ol"
	}
	pad := indentation(level)
	p.push(kind)
	p.out.WriteString(pad + "<" + tag + ">\n")
	for {
		p.item(kind, level)
		if n.level != level {
			break
		}
		if next, _ := p.doc.listKindAt(p.doc.pos); next != kind {
			break
		}
	}
	if n.level != 0 && n.level < level {
		tracer().Debugf("dedent from level %d to %d, forgetting width %d", level, n.level, base)
		n.forget(base)
	}
	p.out.WriteString(pad + "</" + tag + ">\n")
	p.pop()
}

// item handles a single list item and then resolves the item on the next
// line, if any. Deeper items are handled by nested lists before item returns.
func (p *parser) item(kind State, level int) {
	d, n := p.doc, p.lists
	p.skipMarker(kind)
	p.out.WriteString(indentation(level) + "<li>")
	p.inline()
	p.out.WriteString("</li>\n")
	n.level = 0
	w := d.indentAt(d.pos)
	if w-n.indent > p.opts.indentLimit {
		tracer().Debugf("indentation %d exceeds limit after width %d, list ends", w, n.indent)
		return
	}
	if _, ok := d.listKindAt(d.pos + w); !ok {
		return
	}
	width, lvl := n.resolve(w, level)
	tracer().Debugf("item at width %d resolves to level %d (width %d)", w, lvl, width)
	d.pos += w
	n.indent = width
	n.level = lvl
	for n.level > level {
		next, _ := d.listKindAt(d.pos)
		p.list(next, n.level)
	}
}

// skipMarker moves the cursor behind a list marker and a single space.
func (p *parser) skipMarker(kind State) {
	d := p.doc
	if kind == OrderedList {
		d.pos += d.orderedMarkerAt(d.pos)
	} else {
		d.pos++
	}
	if d.char() == ' ' {
		d.pos++
	}
}

// indentation returns the padding for list tags at a nesting level.
func indentation(level int) string {
	if level <= 1 {
		return ""
	}
	return strings.Repeat(" ", 4*(level-1))
}
