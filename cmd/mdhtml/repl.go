package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/mdhtml/core"
	"github.com/npillmayer/mdhtml/input/markdown"
	"github.com/pterm/pterm"
)

const (
	promptFirst = "md > "
	promptMore  = "   | "
)

// session collects Markdown lines until a block is complete.
type session struct {
	lines []string
	opts  []markdown.Option
	out   io.Writer
}

// interact starts interactive mode. A terminal gets a line editor, other
// input is read as is.
func interact(opts []markdown.Option, in *os.File, out io.Writer) error {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return repl(opts, out)
	}
	tracer().Debugf("input is not a terminal, reading blocks without line editing")
	return batch(opts, in, out)
}

// batch converts blocks read from r. A block not terminated by a dot at the
// end of input is converted, too.
func batch(opts []markdown.Option, r io.Reader, out io.Writer) error {
	s := &session{opts: opts, out: out}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot read input")
	}
	if len(s.lines) > 0 {
		s.feed(".")
	}
	return nil
}

// repl starts interactive mode with line editing.
func repl(opts []markdown.Option, out io.Writer) error {
	rl, err := readline.New(promptFirst)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot start interactive mode")
	}
	defer rl.Close()
	pterm.Info.Println("Enter Markdown, finish a block with a single '.', quit with <ctrl>D")
	s := &session{opts: opts, out: out}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if s.feed(line) {
			rl.SetPrompt(promptFirst)
		} else {
			rl.SetPrompt(promptMore)
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// feed adds a line to the session. If the line completes a block, the block
// is converted and printed, and feed returns true.
func (s *session) feed(line string) bool {
	if strings.TrimSpace(line) != "." {
		s.lines = append(s.lines, line)
		return false
	}
	src := strings.Join(s.lines, "\n")
	s.lines = s.lines[:0]
	html, err := markdown.Convert(src, s.opts...)
	if err != nil {
		tracer().Errorf("%v", err)
		pterm.Error.Println(core.UserMessage(err))
		return true
	}
	fmt.Fprintln(s.out, html)
	return true
}
