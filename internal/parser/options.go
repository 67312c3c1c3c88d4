package parser

import (
	"io"
	"log/slog"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

const defaultMaxDepth = 64

type options struct {
	maxDepth      int
	skipUnknown   bool
	normalize     bool
	logger        *slog.Logger
	charsetReader func(label string, input io.Reader) (io.Reader, error)
}

// Option configures Parse.
type Option func(*options)

// WithMaxDepth bounds element nesting. Values <= 0 keep the default of 64.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithSkipUnknown skips elements outside the XtabML grammar, with their
// whole subtree, instead of failing.
func WithSkipUnknown() Option {
	return func(o *options) {
		o.skipUnknown = true
	}
}

// WithNormalizedText applies Unicode NFC to titles, labels and control
// values. Cell values are never touched.
func WithNormalizedText() Option {
	return func(o *options) {
		o.normalize = true
	}
}

// WithLogger receives debug events while parsing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCharsetReader replaces the decoder used for non-UTF-8 documents.
func WithCharsetReader(fn func(label string, input io.Reader) (io.Reader, error)) Option {
	return func(o *options) {
		o.charsetReader = fn
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxDepth:      defaultMaxDepth,
		logger:        slog.New(slog.DiscardHandler),
		charsetReader: charset.NewReaderLabel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) label(s string) string {
	if o.normalize {
		return norm.NFC.String(s)
	}
	return s
}
