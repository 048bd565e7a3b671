package markdown

import (
	"github.com/npillmayer/mdhtml/core"
)

// State is the kind of construct a parser is currently inside of.
type State int8

// States of the parser. Text is the top-level state and the bottom entry of
// every state stack.
const (
	Text State = iota
	Header
	Bold
	Italic
	BoldItalic
	InlineCode
	CodeBlock
	Link
	Quote
	Strikethrough
	OrderedList
	UnorderedList
	Paragraph
)

var stateNames = [...]string{
	"Text", "Header", "Bold", "Italic", "BoldItalic", "InlineCode", "CodeBlock",
	"Link", "Quote", "Strikethrough", "OrderedList", "UnorderedList", "Paragraph",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

// emphasisMarker returns the length of the run of asterisks which opens and
// closes s, or 0 if s is not an emphasis state.
func (s State) emphasisMarker() int {
	switch s {
	case Italic:
		return 1
	case Bold:
		return 2
	case BoldItalic:
		return 3
	}
	return 0
}

func emphasisFor(marker int) State {
	switch marker {
	case 1:
		return Italic
	case 2:
		return Bold
	}
	return BoldItalic
}

// --- State stack -----------------------------------------------------------

// stateStack is a pushdown store of parser states. It is created holding
// the sentinel Text, which can never be popped.
type stateStack []State

func newStateStack() stateStack {
	s := make(stateStack, 1, 16)
	s[0] = Text
	return s
}

func (s *stateStack) push(state State) {
	*s = append(*s, state)
}

// pop removes the topmost state. Popping the sentinel is an internal error.
func (s *stateStack) pop() error {
	if len(*s) <= 1 {
		return core.Error(core.EINTERNAL, "attempt to pop the bottom Text state")
	}
	*s = (*s)[:len(*s)-1]
	return nil
}

func (s stateStack) current() State {
	return s[len(s)-1]
}

func (s stateStack) depth() int {
	return len(s)
}
