/*
Package html inspects HTML fragments, as produced by package markdown.

Fragments are neither complete documents nor guaranteed to be well formed.
CheckBalanced verifies that start and end tags pair up properly, and Select
finds elements of a fragment by CSS selector.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"errors"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/mdhtml/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'mdhtml.html'.
func tracer() tracing.Trace {
	return tracing.Select("mdhtml.html")
}

// void elements never have an end tag.
var void = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true,
	"area": true, "base": true, "col": true, "embed": true, "source": true, "wbr": true,
}

// CheckBalanced checks that every start tag of an HTML fragment is closed by
// a matching end tag, in proper nesting order. Void elements are exempt.
// Unknown element names, like <quoteblock>, are treated like any other.
// A violation is reported as an error with code core.EINVALID.
func CheckBalanced(fragment string) error {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var open []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return core.WrapError(err, core.EINVALID, "cannot tokenize HTML fragment")
			}
			if len(open) > 0 {
				return core.Error(core.EINVALID, "element <%s> is not closed", open[len(open)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if !void[string(name)] {
				open = append(open, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(open) == 0 {
				return core.Error(core.EINVALID, "end tag </%s> without start tag", name)
			}
			if top := open[len(open)-1]; top != string(name) {
				return core.Error(core.EINVALID, "end tag </%s> does not match <%s>", name, top)
			}
			open = open[:len(open)-1]
		}
	}
}

// Select parses an HTML fragment and returns all elements matching a CSS
// selector, in document order.
func Select(fragment string, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid selector %q", selector)
	}
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML fragment")
	}
	var matches []*html.Node
	for _, n := range nodes {
		matches = append(matches, sel.MatchAll(n)...)
	}
	tracer().Debugf("selector %q matches %d elements", selector, len(matches))
	return matches, nil
}

// InnerText returns the concatenated text content of an element and all of
// its descendents.
func InnerText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
