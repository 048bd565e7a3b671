package markdown

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/mdhtml/core"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// document is the normalized Markdown source together with the scan
// position. Positions are rune offsets; pos never exceeds length.
type document struct {
	text   []rune
	length int
	pos    int
}

func newDocument(text string) *document {
	runes := []rune(text)
	return &document{text: runes, length: len(runes)}
}

func (d *document) atEnd() bool {
	return d.pos >= d.length
}

// at returns the rune at position i. If i is out of range, false is returned.
func (d *document) at(i int) (rune, bool) {
	if i < 0 || i >= d.length {
		return 0, false
	}
	return d.text[i], true
}

// char returns the rune at the scan position, or 0 at the end of input.
func (d *document) char() rune {
	r, _ := d.at(d.pos)
	return r
}

// hasPrefix checks if the text at position i starts with s.
func (d *document) hasPrefix(i int, s string) bool {
	if i < 0 {
		return false
	}
	for _, r := range s {
		if i >= d.length || d.text[i] != r {
			return false
		}
		i++
	}
	return true
}

// run counts the consecutive occurrences of r starting at i, up to max.
func (d *document) run(i int, r rune, max int) int {
	n := 0
	for n < max && i+n < d.length && d.text[i+n] == r {
		n++
	}
	return n
}

// indentAt is the distance from i to the first non-space rune. If only spaces
// follow up to the end of input, the distance is 0.
func (d *document) indentAt(i int) int {
	n := 0
	for ; i < d.length; i++ {
		if d.text[i] != ' ' {
			return n
		}
		n++
	}
	return 0
}

// orderedMarkerAt returns the length of an ordered list marker at i, i.e. a
// run of decimal digits immediately followed by a dot. It returns 0 if there
// is no such marker.
func (d *document) orderedMarkerAt(i int) int {
	n := 0
	for i+n < d.length && isDigit(d.text[i+n]) {
		n++
	}
	if n == 0 || !d.hasPrefix(i+n, ".") {
		return 0
	}
	return n + 1
}

// listKindAt returns the kind of list item starting at i, if any.
func (d *document) listKindAt(i int) (State, bool) {
	if d.hasPrefix(i, "-") {
		return UnorderedList, true
	}
	if d.orderedMarkerAt(i) > 0 {
		return OrderedList, true
	}
	return Text, false
}

// slice returns the text between positions from and to as a string.
func (d *document) slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > d.length {
		to = d.length
	}
	if from >= to {
		return ""
	}
	return string(d.text[from:to])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ---------------------------------------------------------------------------

// output is the append-only HTML buffer of a conversion. The HTML of every
// finished top-level block is moved into a cord as a separate fragment.
type output struct {
	block     strings.Builder
	lineStart int // byte offset of the current line within block
	blocks    *cords.Builder
	count     int
}

func newOutput() *output {
	return &output{blocks: cords.NewBuilder()}
}

func (o *output) WriteString(s string) {
	n := o.block.Len()
	o.block.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		o.lineStart = n + i + 1
	}
}

func (o *output) WriteRune(r rune) {
	o.block.WriteRune(r)
	if r == '\n' {
		o.lineStart = o.block.Len()
	}
}

// lineWidth is the display width of the current output line, measured in
// terminal cells. Wide east asian characters count twice, a grapheme made of
// several runes counts once.
func (o *output) lineWidth() int {
	return displayWidth(o.block.String()[o.lineStart:])
}

var setupGraphemes sync.Once

func displayWidth(s string) int {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return len(s)
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		w += uax11.Width([]byte(gstr.Nth(i)), uax11.LatinContext)
	}
	return w
}

// flush closes the HTML of the current top-level block, which is of kind k.
func (o *output) flush(k State) {
	if o.block.Len() == 0 {
		return
	}
	f := &fragment{kind: k, content: o.block.String()}
	o.block.Reset()
	o.lineStart = 0
	if err := o.blocks.Append(f); err != nil {
		panic(abort{core.WrapError(err, core.EINTERNAL, "cannot append %s block to output", k)})
	}
	o.count++
}

// cord returns the fragments flushed so far.
func (o *output) cord() cords.Cord {
	return o.blocks.Cord()
}

// ---------------------------------------------------------------------------

// fragment is the leaf type of output cords. It holds the HTML of a single
// top-level block.
type fragment struct {
	kind    State
	content string
}

// Weight of a fragment is its string length in bytes.
func (f fragment) Weight() uint64 {
	return uint64(len(f.content))
}

func (f fragment) String() string {
	return f.content
}

// Split splits a fragment at byte position i; both halves keep the block kind.
func (f fragment) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return &fragment{kind: f.kind, content: f.content[:i]},
		&fragment{kind: f.kind, content: f.content[i:]}
}

// Substring returns a byte segment of the fragment's HTML.
func (f fragment) Substring(i, j uint64) []byte {
	return []byte(f.content)[i:j]
}

var _ cords.Leaf = fragment{}
