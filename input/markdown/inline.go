package markdown

import (
	"github.com/npillmayer/mdhtml/core"
)

// lineEnd tells why an invocation of inline parsing returned.
type lineEnd int8

const (
	endOfInput lineEnd = iota
	endOfLine
	hardBreak
	spanClosed // the state stack shrank below the starting depth
)

// inline parses inline content at the cursor and writes it to the output. It
// returns at the end of the line, which is consumed, or as soon as a closing
// marker has popped one of the states open when inline was invoked.
func (p *parser) inline() lineEnd {
	d := p.doc
	depth := p.states.depth()
	for !d.atEnd() {
		if p.states.depth() != depth {
			return spanClosed
		}
		switch c := d.char(); {
		case c == '\n':
			d.pos++
			return endOfLine
		case c == '*':
			p.emphasis()
		case c == '[':
			p.link()
		case c == '`':
			p.code()
		case c == '~':
			p.strikethrough()
		case c == ' ' && p.states.current() == Paragraph && d.hasPrefix(d.pos, "  \n"):
			p.out.WriteString("<br>\n")
			d.pos += 3
			return hardBreak
		default:
			p.out.WriteRune(c)
			d.pos++
		}
	}
	if p.states.depth() != depth {
		return spanClosed
	}
	return endOfInput
}

// spanClose writes a newline after a closing tag if the span was opened at
// block level or if the current output line has grown too long.
func (p *parser) spanClose(tag string) {
	p.out.WriteString(tag)
	if p.states.current() == Text || p.out.lineWidth() > p.opts.wrapColumn {
		p.out.WriteRune('\n')
	}
}

// enclose parses the content of span s after its opening marker has been
// consumed. s is pushed, and is expected to be popped by its closing marker.
func (p *parser) enclose(s State, open, close string) {
	p.push(s)
	depth := p.states.depth()
	p.out.WriteString(open)
	p.inline()
	if p.states.depth() == depth {
		p.fail(core.EUNTERMINATED, "%s span is not closed", s)
	}
	p.spanClose(close)
}

// emphasis handles a run of asterisks at the cursor.
//
// If the innermost open span is emphasis and its marker is found at the
// cursor, the marker closes it. Asterisks left over are handled by the
// enclosing invocation, so "**a *b***" closes both spans. In every other case
// the run opens a span for the longest marker possible, where "***" is bold
// italic, "**" is bold and "*" is italic.
func (p *parser) emphasis() {
	d := p.doc
	run := d.run(d.pos, '*', 3)
	if m := p.states.current().emphasisMarker(); m > 0 && run >= m {
		d.pos += m
		p.pop()
		return
	}
	d.pos += run
	switch s := emphasisFor(run); s {
	case Italic:
		p.enclose(s, "<em>", "</em>")
	case Bold:
		p.enclose(s, "<strong>", "</strong>")
	default:
		p.enclose(s, "<em><strong>", "</strong></em>")
	}
}

// strikethrough handles "~~", which opens or closes a strikethrough span.
// A single tilde is ordinary text.
func (p *parser) strikethrough() {
	d := p.doc
	if !d.hasPrefix(d.pos, "~~") {
		p.out.WriteRune('~')
		d.pos++
		return
	}
	d.pos += 2
	if p.states.current() == Strikethrough {
		p.pop()
		return
	}
	p.enclose(Strikethrough, "<s>", "</s>")
}

// link handles "[text](url)". Text and URL are copied verbatim and have to
// be on the same line.
func (p *parser) link() {
	d := p.doc
	p.push(Link)
	d.pos++
	text := p.scanTo(']', "link text is not closed by ']'")
	if !d.hasPrefix(d.pos, "(") {
		p.fail(core.EUNTERMINATED, "link text is not followed by '('")
	}
	d.pos++
	url := p.scanTo(')', "link target is not closed by ')'")
	p.pop()
	p.spanClose("<a href=" + url + ">" + text + "</a>")
}

// code handles backticks. A fence starts a code block, but only at the top
// level; within other constructs it is copied. A single backtick starts a
// code span.
func (p *parser) code() {
	d := p.doc
	if d.hasPrefix(d.pos, fence) {
		if p.states.current() == Text {
			p.codeBlock()
			return
		}
		d.pos += len(fence)
		p.out.WriteString(fence)
		return
	}
	p.push(InlineCode)
	d.pos++
	content := p.scanTo('`', "code span is not closed by '`'")
	p.pop()
	p.spanClose("<code>" + content + "</code>")
}

// scanTo returns the text from the cursor up to delim, which must occur on
// the current line. The cursor is placed after delim.
func (p *parser) scanTo(delim rune, msg string) string {
	d := p.doc
	from := d.pos
	for {
		c, ok := d.at(d.pos)
		if !ok || c == '\n' {
			p.fail(core.EUNTERMINATED, "%s", msg)
		}
		if c == delim {
			break
		}
		d.pos++
	}
	s := d.slice(from, d.pos)
	d.pos++
	return s
}
