package parser

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// frame is one open element on the parse stack. Each concrete frame carries
// only the partial state legal for what it is building.
type frame interface {
	base() *frameBase
}

type frameBase struct {
	name   string
	prefix string // as written; RawToken does not resolve namespaces
	path   string
	line   int
	text   strings.Builder // character data seen directly inside this element
	counts map[string]int  // child element name -> occurrences so far
}

func (b *frameBase) base() *frameBase { return b }

// childPath returns the path of the next child called name.
func (b *frameBase) childPath(name string) string {
	if b.counts == nil {
		b.counts = make(map[string]int)
	}
	b.counts[name]++
	return b.path + "/" + name + "[" + strconv.Itoa(b.counts[name]) + "]"
}

func (b *frameBase) qname() string {
	return qualified(xml.Name{Space: b.prefix, Local: b.name})
}

func (b *frameBase) directText() string {
	return b.text.String()
}

type documentFrame struct {
	frameBase
	doc      Document
	rootDone bool
}

// textFrame collects the content of t, title, v, and the document fields.
type textFrame struct {
	frameBase
}

type languageFrame struct {
	frameBase
	lang Language
}

type controlTypeFrame struct {
	frameBase
	ct ControlType
}

type statisticTypeFrame struct {
	frameBase
	st StatisticType
}

type controlFrame struct {
	frameBase
	kind     string
	value    string
	hasValue bool
}

type tableFrame struct {
	frameBase
	table      Table
	hasTitle   bool
	hasRowEdge bool
	hasColEdge bool
}

type edgeFrame struct {
	frameBase
	edge Edge
}

type groupFrame struct {
	frameBase
	group    Group
	hasLabel bool
}

type elementFrame struct {
	frameBase
	elem     Element
	hasLabel bool
}

type statisticFrame struct {
	frameBase
	typ string
}

type dataFrame struct {
	frameBase
	table *tableFrame
}

type rowFrame struct {
	frameBase
	row DataRow
}

type cellFrame struct {
	frameBase
	value    string
	hasValue bool
	missing  bool
}

// missingFrame is the x marker. It never holds content.
type missingFrame struct {
	frameBase
}

// skipFrame swallows an unknown subtree when WithSkipUnknown is set.
type skipFrame struct {
	frameBase
}
