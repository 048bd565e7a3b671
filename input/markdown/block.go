package markdown

import (
	"strconv"

	"github.com/npillmayer/mdhtml/core"
)

// blocks is the top-level loop of a conversion. Block constructs may start
// only as long as the current state is Text.
func (p *parser) blocks() {
	d := p.doc
	for !d.atEnd() && p.states.current() == Text {
		c := d.char()
		kind := Paragraph
		switch {
		case c == '#':
			kind = Header
			p.header()
		case c == '*':
			kind = emphasisFor(d.run(d.pos, '*', 3))
			p.emphasis()
		case c == '[':
			kind = Link
			p.link()
		case c == '`':
			kind = InlineCode
			if d.hasPrefix(d.pos, fence) {
				kind = CodeBlock
			}
			p.code()
		case c == '~' && d.hasPrefix(d.pos, "~~"):
			kind = Strikethrough
			p.strikethrough()
		case c == '>':
			kind = Quote
			p.quote()
		case c == '\n':
			d.pos++
			continue
		case c == '-' || d.orderedMarkerAt(d.pos) > 0:
			kind, _ = d.listKindAt(d.pos)
			p.topLevelList(0)
		case c == ' ' && p.indentedItemAt(d.pos):
			w := d.indentAt(d.pos)
			kind, _ = d.listKindAt(d.pos + w)
			p.topLevelList(w)
		default:
			p.paragraph()
		}
		p.out.flush(kind)
	}
}

// indentedItemAt is true if a list item marker follows a run of spaces at i.
func (p *parser) indentedItemAt(i int) bool {
	w := p.doc.indentAt(i)
	if w == 0 {
		return false
	}
	_, ok := p.doc.listKindAt(i + w)
	return ok
}

// startsBlock is true if the line at i starts a construct which ends a
// paragraph.
func (p *parser) startsBlock(i int) bool {
	d := p.doc
	c, ok := d.at(i)
	if !ok {
		return false
	}
	if c == '#' || c == '>' || d.hasPrefix(i, fence) {
		return true
	}
	_, ok = d.listKindAt(i + d.indentAt(i))
	return ok
}

// header handles "# title". The number of hashes is the level of the header;
// it is not clamped to 6.
func (p *parser) header() {
	d := p.doc
	level := d.run(d.pos, '#', d.length)
	d.pos += level
	if d.char() == ' ' {
		d.pos++
	}
	tag := "h" + strconv.Itoa(level)
	p.push(Header)
	p.out.WriteString("<" + tag + ">")
	p.inline()
	p.pop()
	p.spanClose("</" + tag + ">")
}

// quote handles consecutive lines starting with '>'.
func (p *parser) quote() {
	d := p.doc
	p.push(Quote)
	p.out.WriteString("<quoteblock>\n")
	for d.hasPrefix(d.pos, ">") {
		d.pos++
		if d.char() == ' ' {
			d.pos++
		}
		p.inline()
		p.out.WriteRune('\n')
	}
	p.out.WriteString("</quoteblock>\n")
	p.pop()
}

// paragraph collects lines until a line starts another block construct.
// Lines are joined by a single space.
func (p *parser) paragraph() {
	d := p.doc
	p.push(Paragraph)
	p.out.WriteString("<p>")
	for {
		end := p.inline()
		if d.atEnd() || p.startsBlock(d.pos) {
			break
		}
		if end == endOfLine {
			p.out.WriteRune(' ')
		}
	}
	p.out.WriteString("</p>\n")
	p.pop()
}

// codeBlock handles a fenced code block. The rest of the opening fence line
// is ignored. The content is copied verbatim up to a line starting with the
// closing fence.
func (p *parser) codeBlock() {
	d := p.doc
	p.push(CodeBlock)
	d.pos += len(fence)
	for !d.atEnd() && d.char() != '\n' {
		d.pos++
	}
	if d.atEnd() {
		p.fail(core.EUNTERMINATED, "code block is not closed by %s", fence)
	}
	d.pos++
	from := d.pos
	for !(d.hasPrefix(d.pos, fence) && (d.pos == from || d.text[d.pos-1] == '\n')) {
		if d.atEnd() {
			p.fail(core.EUNTERMINATED, "code block is not closed by %s", fence)
		}
		d.pos++
	}
	to := d.pos
	if to > from {
		to-- // newline in front of the closing fence
	}
	content := d.slice(from, to)
	d.pos += len(fence)
	for !d.atEnd() && d.char() != '\n' {
		d.pos++
	}
	p.pop()
	tracer().Debugf("code block of %d runes", to-from)
	p.spanClose("<pre><code>" + content + "</code></pre>")
}
