/*
Package markdown converts a restricted Markdown dialect into HTML fragments.

The dialect covers ATX headers, paragraphs with hard line breaks, block quotes,
fenced code blocks, ordered and unordered lists with indentation-driven
nesting, and the inline spans emphasis, strong emphasis, strikethrough, code
and links. Tables, images, footnotes and HTML escaping are not supported;
characters without meaning in the dialect are copied to the output verbatim.

Conversion happens in a single pass. A recursive-descent parser walks the
normalized input once, keeping an explicit stack of open constructs. The stack
never becomes empty: its bottom entry is the top-level text state, and block
constructs may only start while it is current. Inline parsing is bounded by the
stack depth at which it started, which lets a span's closing marker end every
invocation that is waiting for it.

List nesting is derived from indentation alone. Every indentation width seen
within a list is mapped to a nesting level: deeper widths open a new level,
shallower widths without an exact match fall back to the nearest lower width
already known.

Malformed input, e.g. a link without its closing parenthesis, is rejected with
an error carrying code core.EUNTERMINATED. There is no partial output.

A parser is not safe for concurrent use, but every call of Convert creates its
own, so clients may convert different documents in parallel.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdhtml.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("mdhtml.markdown")
}
