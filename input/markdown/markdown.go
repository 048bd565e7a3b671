package markdown

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/mdhtml/core"
)

// Convert normalizes a Markdown source text and converts it to HTML.
// The result holds HTML fragments only, without <html> or <body> wrappers,
// and does not end in a newline.
//
// If the source contains an unterminated construct, Convert returns an error
// with code core.EUNTERMINATED and no HTML at all.
func Convert(src string, opts ...Option) (string, error) {
	doc, err := ConvertDocument(src, opts...)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// ConvertNormalized converts text which has already been normalized by
// Normalize.
func ConvertNormalized(text string, opts ...Option) (string, error) {
	doc, err := convert(text, makeOptions(opts))
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// ConvertDocument is like Convert, but returns the HTML as a Document, which
// keeps the output of every top-level block as a separate fragment.
func ConvertDocument(src string, opts ...Option) (*Document, error) {
	o := makeOptions(opts)
	return convert(Normalize(src, opts...), o)
}

func convert(text string, o options) (*Document, error) {
	p := newParser(text, o)
	if err := p.run(); err != nil {
		tracer().Errorf("markdown conversion failed: %v", err)
		return nil, err
	}
	return &Document{html: p.out.cord(), blocks: p.out.count}, nil
}

// Document is the HTML output of a conversion.
type Document struct {
	html   cords.Cord
	blocks int
}

// String returns the HTML of the document, without trailing newlines.
func (doc *Document) String() string {
	if doc == nil || doc.html.IsVoid() {
		return ""
	}
	return strings.TrimRight(doc.html.String(), "\n")
}

// Blocks returns the number of top-level blocks of the document.
func (doc *Document) Blocks() int {
	if doc == nil {
		return 0
	}
	return doc.blocks
}

// EachBlock calls f for every top-level block, in document order. kind is the
// state which started the block, e.g. Header or UnorderedList; top-level
// inline spans report the state of their span. If f returns an error,
// iteration stops and the error is returned.
func (doc *Document) EachBlock(f func(kind State, html string) error) error {
	if doc == nil || doc.html.IsVoid() {
		return nil
	}
	return doc.html.EachLeaf(func(leaf cords.Leaf, pos uint64) error {
		frag, ok := leaf.(*fragment)
		if !ok {
			return core.Error(core.EINTERNAL, "unexpected leaf type %T in document", leaf)
		}
		return f(frag.kind, frag.content)
	})
}

// --- Parser ----------------------------------------------------------------

// parser holds the complete mutable state of one conversion.
type parser struct {
	doc    *document
	out    *output
	states stateStack
	lists  *listNesting
	opts   options
}

func newParser(text string, o options) *parser {
	return &parser{
		doc:    newDocument(text),
		out:    newOutput(),
		states: newStateStack(),
		lists:  newListNesting(),
		opts:   o,
	}
}

// abort is the panic value carrying a fatal parse error up to run.
type abort struct {
	err error
}

// fail stops the conversion.
func (p *parser) fail(code int, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	panic(abort{core.Error(code, "%s (at position %d)", msg, p.doc.pos)})
}

func (p *parser) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			err = a.err
		}
	}()
	p.blocks()
	if d := p.states.depth(); d != 1 {
		return core.Error(core.EINTERNAL, "conversion ended with %d open states, top is %s",
			d-1, p.states.current())
	}
	return nil
}

func (p *parser) push(s State) {
	p.states.push(s)
	tracer().Debugf("push %s, depth %d", s, p.states.depth())
}

func (p *parser) pop() {
	s := p.states.current()
	if err := p.states.pop(); err != nil {
		panic(abort{err})
	}
	tracer().Debugf("pop %s, depth %d", s, p.states.depth())
}
