/*
Command mdhtml converts Markdown files to HTML fragments.

Usage:

	mdhtml -in README.md -out README.html
	mdhtml -in notes.md -check -select "ul > li"
	mdhtml -i
	mdhtml -config mdhtml.yaml -in README.md

Without -out the HTML is written to stdout. With -i, mdhtml starts an
interactive session: Markdown is collected line by line and converted as soon
as a line consisting of a single dot is entered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/mdhtml/core"
	"github.com/npillmayer/mdhtml/input/html"
	"github.com/npillmayer/mdhtml/input/markdown"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'mdhtml.cli'
func tracer() tracing.Trace {
	return tracing.Select("mdhtml.cli")
}

var tracingKeys = []string{"mdhtml.cli", "mdhtml.markdown", "mdhtml.html"}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error], default from config or Error")
	in := flag.String("in", "", "Markdown input file")
	out := flag.String("out", "", "HTML output file (default stdout)")
	nfc := flag.Bool("nfc", false, "Normalize input to Unicode NFC")
	check := flag.Bool("check", false, "Verify that the HTML output is tag-balanced")
	selector := flag.String("select", "", "Report elements of the output matching a CSS selector")
	interactive := flag.Bool("i", false, "Interactive mode")
	config := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	// set up logging
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range tracingKeys {
		conf["trace."+key] = "Error"
	}
	if *config != "" {
		if err := loadConfig(*config, conf); err != nil {
			core.UserError(err)
			os.Exit(2)
		}
	}
	if *nfc {
		conf[markdown.ConfNFC] = "true"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if *tlevel != "" {
		level := traceLevel(*tlevel)
		for _, key := range tracingKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
		tracer().Infof("Trace level is %s", *tlevel)
	}
	opts := markdown.OptionsFromConfig(conf)

	if *interactive {
		if err := interact(opts, os.Stdin, os.Stdout); err != nil {
			core.UserError(err)
			os.Exit(3)
		}
		return
	}
	if *in == "" {
		pterm.Error.Println("no input file given, use -in or -i")
		flag.Usage()
		os.Exit(2)
	}
	job := &job{input: *in, output: *out, check: *check, selector: *selector, opts: opts}
	if err := job.run(); err != nil {
		core.UserError(err)
		os.Exit(4)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(s string) tracing.TraceLevel {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// job is a single file conversion.
type job struct {
	input    string
	output   string
	check    bool
	selector string
	opts     []markdown.Option
}

func (j *job) run() error {
	src, err := os.ReadFile(j.input)
	if err != nil {
		if os.IsNotExist(err) {
			return core.WrapError(err, core.EMISSING, "input file %s does not exist", j.input)
		}
		return core.WrapError(err, core.EINVALID, "cannot read input file %s", j.input)
	}
	tracer().Debugf("read %d bytes from %s", len(src), j.input)
	out, err := markdown.Convert(string(src), j.opts...)
	if err != nil {
		return err
	}
	if err = inspect(out, j.check, j.selector); err != nil {
		return err
	}
	if j.output == "" {
		_, err = io.WriteString(os.Stdout, out+"\n")
		return err
	}
	if err = os.WriteFile(j.output, []byte(out+"\n"), 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write output file %s", j.output)
	}
	pterm.Info.Printfln("wrote %s", j.output)
	return nil
}

// inspect runs the optional checks on converted HTML.
func inspect(out string, check bool, selector string) error {
	if check {
		if err := html.CheckBalanced(out); err != nil {
			return err
		}
		pterm.Info.Println("HTML output is balanced")
	}
	if selector != "" {
		nodes, err := html.Select(out, selector)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("%d elements match %q", len(nodes), selector)
		for i, n := range nodes {
			pterm.Info.Printfln("%3d  <%s> %s", i+1, n.Data, html.InnerText(n))
		}
	}
	return nil
}
