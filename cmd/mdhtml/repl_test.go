package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSessionFeed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdhtml.cli")
	defer teardown()
	//
	var out bytes.Buffer
	s := &session{out: &out}
	if s.feed("# Title") {
		t.Errorf("expected header line not to complete a block")
	}
	if !s.feed(".") {
		t.Fatalf("expected '.' to complete a block")
	}
	if out.String() != "<h1>Title</h1>\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if len(s.lines) != 0 {
		t.Errorf("expected session to be empty after conversion, has %d lines", len(s.lines))
	}
}

func TestSessionFeedError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdhtml.cli")
	defer teardown()
	//
	var out bytes.Buffer
	s := &session{out: &out}
	s.feed("[text](url")
	if !s.feed(".") {
		t.Fatalf("expected '.' to complete a block")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for malformed input, got %q", out.String())
	}
}

func TestInspect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdhtml.cli")
	defer teardown()
	//
	if err := inspect("<ul>\n<li>a</li>\n</ul>", true, "li"); err != nil {
		t.Errorf("expected balanced fragment to pass, got %v", err)
	}
	if err := inspect("<ul>\n<li>a</li>", true, ""); err == nil {
		t.Errorf("expected unbalanced fragment to be rejected")
	}
	if err := inspect("<p>x</p>", false, "p["); err == nil {
		t.Errorf("expected invalid selector to be rejected")
	}
}

func TestBatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdhtml.cli")
	defer teardown()
	//
	var out bytes.Buffer
	in := strings.NewReader("# One\n.\n[bad](link\n.\n- a\n- b")
	if err := batch(nil, in, &out); err != nil {
		t.Fatal(err)
	}
	expected := "<h1>One</h1>\n<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}
