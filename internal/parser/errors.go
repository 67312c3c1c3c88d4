package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a parse failure.
type Kind int

const (
	// MalformedXML means the lexical source rejected the input.
	MalformedXML Kind = iota + 1
	// InvalidStructure means well-formed XML that does not follow the XtabML grammar.
	InvalidStructure
	// MissingElement means a required attribute or child element is absent.
	MissingElement
	// ResourceAccess means the byte source could not be opened or read.
	ResourceAccess
)

func (k Kind) String() string {
	switch k {
	case MalformedXML:
		return "malformed xml"
	case InvalidStructure:
		return "invalid structure"
	case MissingElement:
		return "missing element"
	case ResourceAccess:
		return "resource access"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Each matches any *Error of the same Kind.
var (
	ErrMalformedXML     = &Error{Kind: MalformedXML}
	ErrInvalidStructure = &Error{Kind: InvalidStructure}
	ErrMissingElement   = &Error{Kind: MissingElement}
	ErrResourceAccess   = &Error{Kind: ResourceAccess}
)

// Error is the single error type returned by Parse and friends.
type Error struct {
	Kind    Kind
	Message string
	Path    string // element path, e.g. /xtab/table[2]/data/r[5]
	Line    int
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Path == "" && t.Err == nil
}

func structureErrorf(path string, line int, format string, args ...any) *Error {
	return &Error{Kind: InvalidStructure, Message: fmt.Sprintf(format, args...), Path: path, Line: line}
}

func missingErrorf(path string, line int, format string, args ...any) *Error {
	return &Error{Kind: MissingElement, Message: fmt.Sprintf(format, args...), Path: path, Line: line}
}
