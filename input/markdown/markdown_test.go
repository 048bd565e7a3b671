package markdown

import (
	"strings"
	"testing"

	"github.com/npillmayer/mdhtml/core"
	"github.com/npillmayer/mdhtml/input/html"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type ConvertTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestConvertFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdhtml.markdown")
	defer teardown()
	suite.Run(t, new(ConvertTestEnviron))
}

// run once, before test suite methods
func (env *ConvertTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("mdhtml.markdown").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

type conversion struct {
	in, out string
}

func (env *ConvertTestEnviron) convertAll(data []conversion) {
	for _, c := range data {
		out, err := Convert(c.in)
		if env.NoError(err, "input %q", c.in) {
			env.Equal(c.out, out, "input %q", c.in)
			env.NoError(html.CheckBalanced(out), "output of %q is not balanced", c.in)
		}
	}
}

func (env *ConvertTestEnviron) TestHeaders() {
	env.convertAll([]conversion{
		{"# Title", "<h1>Title</h1>"},
		{"#Title", "<h1>Title</h1>"},
		{"### Sub *x*", "<h3>Sub <em>x</em></h3>"},
		{"####### seven", "<h7>seven</h7>"},
		{"# One\n## Two", "<h1>One</h1>\n<h2>Two</h2>"},
	})
}

func (env *ConvertTestEnviron) TestEmphasis() {
	env.convertAll([]conversion{
		{"**bold *and italic* text**", "<strong>bold <em>and italic</em> text</strong>"},
		{"***x***", "<em><strong>x</strong></em>"},
		{"a *b* c", "<p>a <em>b</em> c</p>"},
		{"a **b *c***", "<p>a <strong>b <em>c</em></strong></p>"},
		{"*a**b*", "<em>a</em>\n<em>b</em>"},
		{"x *a**b*", "<p>x <em>a</em><em>b</em></p>"},
		{"**a***b*", "<strong>a</strong>\n<em>b</em>"},
		{"a *b **c** d*", "<p>a <em>b </em><em>c</em><em> d</em></p>"},
		{"a **b *c* d**", "<p>a <strong>b <em>c</em> d</strong></p>"},
		{"a ~~b~~ c", "<p>a <s>b</s> c</p>"},
		{"a ~ b", "<p>a ~ b</p>"},
	})
}

func (env *ConvertTestEnviron) TestCodeAndLinks() {
	env.convertAll([]conversion{
		{"```\ncode\n```", "<pre><code>code</code></pre>"},
		{"```go\nx := *p\n\n**y**\n```", "<pre><code>x := *p\n\n**y**</code></pre>"},
		{"```\n```", "<pre><code></code></pre>"},
		{"use `a*b` here", "<p>use <code>a*b</code> here</p>"},
		{"a ``` b", "<p>a ``` b</p>"},
		{"see [home](http://x.org) now", "<p>see <a href=http://x.org>home</a> now</p>"},
		{"[home](u)", "<a href=u>home</a>"},
	})
}

func (env *ConvertTestEnviron) TestParagraphs() {
	env.convertAll([]conversion{
		{"a\nb", "<p>a b</p>"},
		{"line one  \nline two", "<p>line one<br>\nline two</p>"},
		{"text\n# H", "<p>text</p>\n<h1>H</h1>"},
		{"first\n\n   second", "<p>first second</p>"},
		{"text\n  - a", "<p>text</p>\n<ul>\n<li>a</li>\n</ul>"},
		{"> one\n> two\nafter", "<quoteblock>\none\ntwo\n</quoteblock>\n<p>after</p>"},
		{"", ""},
		{"\n\n  \n", ""},
	})
}

func (env *ConvertTestEnviron) TestLists() {
	env.convertAll([]conversion{
		{"- a\n    - b", "<ul>\n<li>a</li>\n    <ul>\n    <li>b</li>\n    </ul>\n</ul>"},
		{"1. a\n2. b", "<ol>\n<li>a</li>\n<li>b</li>\n</ol>"},
		{"10. ten\n11. eleven", "<ol>\n<li>ten</li>\n<li>eleven</li>\n</ol>"},
		{"- a\n1. b", "<ul>\n<li>a</li>\n</ul>\n<ol>\n<li>b</li>\n</ol>"},
		{"  - a\n  - b", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>"},
		{"- *a* b\n- `c`", "<ul>\n<li><em>a</em> b</li>\n<li><code>c</code></li>\n</ul>"},
	})
}

func (env *ConvertTestEnviron) TestListNesting() {
	env.convertAll([]conversion{
		{ // type switch on a nested level
			"- a\n    1. b\n    2. c\n- d",
			"<ul>\n<li>a</li>\n    <ol>\n    <li>b</li>\n    <li>c</li>\n    </ol>\n<li>d</li>\n</ul>",
		},
		{ // sibling lists of different type at level 2
			"- a\n    - b\n    1. c",
			"<ul>\n<li>a</li>\n    <ul>\n    <li>b</li>\n    </ul>\n    <ol>\n    <li>c</li>\n    </ol>\n</ul>",
		},
		{ // dedent to the nearest lower width
			"- a\n    - b\n        - c\n      - d",
			"<ul>\n<li>a</li>\n    <ul>\n    <li>b</li>\n        <ul>\n        <li>c</li>\n" +
				"        </ul>\n    <li>d</li>\n    </ul>\n</ul>",
		},
		{ // dedent over two levels
			"- a\n  - b\n    - c\n- d",
			"<ul>\n<li>a</li>\n    <ul>\n    <li>b</li>\n        <ul>\n        <li>c</li>\n" +
				"        </ul>\n    </ul>\n<li>d</li>\n</ul>",
		},
		{ // nesting levels do not leak into the next list
			"- a\n    - b\n\npara\n- c\n  - d",
			"<ul>\n<li>a</li>\n    <ul>\n    <li>b</li>\n    </ul>\n</ul>\n<p>para</p>\n" +
				"<ul>\n<li>c</li>\n    <ul>\n    <li>d</li>\n    </ul>\n</ul>",
		},
		{ // a list ends at the first line which is no item
			"1. x\n# H",
			"<ol>\n<li>x</li>\n</ol>\n<h1>H</h1>",
		},
	})
}

func (env *ConvertTestEnviron) TestUnterminated() {
	for _, in := range []string{
		"[text](url",
		"[text] more",
		"[text",
		"*open",
		"*a\nb*",
		"a **b",
		"`code",
		"```\nx",
		"```",
		"~~gone",
	} {
		out, err := Convert(in)
		if env.Error(err, "expected %q to be rejected", in) {
			env.Equal(core.EUNTERMINATED, core.Code(err), "error code for %q", in)
		}
		env.Equal("", out, "expected no output for %q", in)
	}
}

func (env *ConvertTestEnviron) TestWrapColumn() {
	out, err := Convert("ab *c* d", WithWrapColumn(10))
	env.Require().NoError(err)
	env.Equal("<p>ab <em>c</em>\n d</p>", out)
	long := strings.Repeat("a", 90)
	out, err = Convert(long + " *b* c")
	env.Require().NoError(err)
	env.Equal("<p>"+long+" <em>b</em>\n c</p>", out)
}

func (env *ConvertTestEnviron) TestWrapColumnWideCharacters() {
	// 17 runes, but 21 cells before the closing tag is written
	out, err := Convert("\u6f22\u5b57\u6f22\u5b57*a* b", WithWrapColumn(18))
	env.Require().NoError(err)
	env.Equal("<p>\u6f22\u5b57\u6f22\u5b57<em>a</em>\n b</p>", out)
}

func (env *ConvertTestEnviron) TestNFC() {
	out, err := Convert("e\u0301", WithNFC(true))
	env.Require().NoError(err)
	env.Equal("<p>\u00e9</p>", out)
	out, err = Convert("e\u0301")
	env.Require().NoError(err)
	env.Equal("<p>e\u0301</p>", out)
}

func (env *ConvertTestEnviron) TestDocumentBlocks() {
	doc, err := ConvertDocument("# H\npara\n- x\n```\ny\n```")
	env.Require().NoError(err)
	env.Equal(4, doc.Blocks())
	var kinds []State
	err = doc.EachBlock(func(kind State, _ string) error {
		kinds = append(kinds, kind)
		return nil
	})
	env.NoError(err)
	env.Equal([]State{Header, Paragraph, UnorderedList, CodeBlock}, kinds)
	env.Equal("<h1>H</h1>\n<p>para</p>\n<ul>\n<li>x</li>\n</ul>\n<pre><code>y</code></pre>", doc.String())
}

func (env *ConvertTestEnviron) TestStackIsBalanced() {
	for _, in := range []string{
		"# H *a* **b**",
		"- a\n    - b\n        - c\n- d",
		"> *q* `c`\ntext ~~s~~ [l](u)",
		"***x*** and more",
	} {
		p := newParser(Normalize(in), makeOptions(nil))
		env.NoError(p.run(), "input %q", in)
		env.Equal(1, p.states.depth(), "states left open for %q", in)
		env.Equal(Text, p.states.current())
	}
}

func (env *ConvertTestEnviron) TestSelectStructure() {
	out, err := Convert("# T\n- a\n    - b\n    - c\n- d\n1. e")
	env.Require().NoError(err)
	items, err := html.Select(out, "li")
	env.Require().NoError(err)
	env.Len(items, 5)
	top, err := html.Select(out, "ul")
	env.Require().NoError(err)
	env.Len(top, 2)
	ordered, err := html.Select(out, "ol > li")
	env.Require().NoError(err)
	if env.Len(ordered, 1) {
		env.Equal("e", html.InnerText(ordered[0]))
	}
}

func TestConvertNormalized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdhtml.markdown")
	defer teardown()
	//
	out, err := ConvertNormalized("# Title")
	if err != nil {
		t.Fatal(err)
	}
	if out != "<h1>Title</h1>" {
		t.Errorf("expected <h1>Title</h1>, got %q", out)
	}
	// ConvertNormalized must not drop the indentation of paragraphs
	out, err = ConvertNormalized("   x")
	if err != nil {
		t.Fatal(err)
	}
	if out != "<p>   x</p>" {
		t.Errorf("expected paragraph with leading spaces, got %q", out)
	}
}
