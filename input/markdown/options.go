package markdown

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
)

// Configuration keys read by OptionsFromConfig.
const (
	ConfNFC             = "markdown.nfc"
	ConfListIndentLimit = "markdown.list-indent-limit"
	ConfWrapColumn      = "markdown.wrap-column"
)

const (
	defaultListIndentLimit = 5
	defaultWrapColumn      = 80
)

type options struct {
	nfc         bool
	indentLimit int
	wrapColumn  int
}

// Option configures a conversion.
type Option func(*options)

// WithNFC switches on Unicode NFC normalization of the input.
func WithNFC(on bool) Option {
	return func(o *options) {
		o.nfc = on
	}
}

// WithListIndentLimit sets the maximum number of spaces the indentation of a
// list item may increase over the item before it. A larger increase ends the
// list. Values < 1 are ignored.
func WithListIndentLimit(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.indentLimit = n
		}
	}
}

// WithWrapColumn sets the line length after which a closing inline tag is
// followed by a newline. Values < 1 are ignored.
func WithWrapColumn(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.wrapColumn = n
		}
	}
}

func makeOptions(opts []Option) options {
	o := options{
		indentLimit: defaultListIndentLimit,
		wrapColumn:  defaultWrapColumn,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// OptionsFromConfig creates options from the configuration keys ConfNFC,
// ConfListIndentLimit and ConfWrapColumn. Unset or malformed values leave the
// defaults in place.
func OptionsFromConfig(conf schuko.Configuration) []Option {
	var opts []Option
	if conf == nil {
		return opts
	}
	if v := strings.TrimSpace(conf.GetString(ConfNFC)); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			opts = append(opts, WithNFC(on))
		} else {
			tracer().Errorf("config %s: %v", ConfNFC, err)
		}
	}
	for key, opt := range map[string]func(int) Option{
		ConfListIndentLimit: WithListIndentLimit,
		ConfWrapColumn:      WithWrapColumn,
	} {
		v := strings.TrimSpace(conf.GetString(key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			tracer().Errorf("config %s: %v", key, err)
			continue
		}
		opts = append(opts, opt(n))
	}
	return opts
}
