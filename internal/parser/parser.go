package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// ParseFile parses the XtabML document at path.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ResourceAccess, Message: "opening " + path, Err: err}
	}
	defer f.Close()
	return Parse(f, opts...)
}

// ParseBytes parses an in-memory XtabML document.
func ParseBytes(content []byte, opts ...Option) (*Document, error) {
	return Parse(bytes.NewReader(content), opts...)
}

// Parse reads r to the end and returns the fully built document, or the
// first *Error encountered. There are no partial results.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	if r == nil {
		return nil, &Error{Kind: ResourceAccess, Message: "nil reader"}
	}
	src := &sourceReader{r: r}
	dec := xml.NewDecoder(src)
	o := newOptions(opts)
	dec.CharsetReader = o.charsetReader

	p := &parser{dec: dec, src: src, opts: o}
	return p.run()
}

// sourceReader remembers read failures so they are reported as
// ResourceAccess rather than as XML errors.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(b []byte) (int, error) {
	n, err := s.r.Read(b)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

type parser struct {
	dec   *xml.Decoder
	src   *sourceReader
	opts  options
	root  documentFrame
	stack []frame
}

func (p *parser) run() (*Document, error) {
	for {
		tok, err := p.dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, p.lexicalError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			err = p.start(t)
		case xml.EndElement:
			err = p.end(t)
		case xml.CharData:
			err = p.charData(t)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(p.stack) > 0 {
		top := p.top().base()
		return nil, structureErrorf(top.path, top.line, "unclosed element <%s>", top.name)
	}
	if !p.root.rootDone {
		return nil, missingErrorf("", 0, "root element <%s>", rootElement)
	}
	doc := p.root.doc
	return &doc, nil
}

func (p *parser) lexicalError(err error) error {
	line, _ := p.dec.InputPos()
	if p.src.err != nil && errors.Is(err, p.src.err) {
		return &Error{Kind: ResourceAccess, Message: "reading document", Line: line, Err: err}
	}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &Error{Kind: MalformedXML, Line: syn.Line, Err: err}
	}
	return &Error{Kind: MalformedXML, Line: line, Err: err}
}

func (p *parser) top() frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) parentName() string {
	if top := p.top(); top != nil {
		return top.base().name
	}
	return ""
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()
	return line
}

func (p *parser) start(t xml.StartElement) error {
	name := t.Name.Local
	line := p.line()

	var parentPath string
	if top := p.top(); top != nil {
		parentPath = top.base().path
	} else if p.root.rootDone {
		return structureErrorf("/"+name, line, "element after the root element")
	}

	// skipped subtrees count toward the limit too
	if len(p.stack) >= p.opts.maxDepth {
		return structureErrorf(parentPath+"/"+name, line, "nesting deeper than %d", p.opts.maxDepth)
	}

	if _, skipping := p.top().(*skipFrame); skipping {
		p.push(&skipFrame{}, t.Name, line)
		return nil
	}

	r, known := grammar[name]
	if !known {
		if p.opts.skipUnknown {
			p.opts.logger.Debug("skipping unknown element", "element", name, "line", line)
			p.push(&skipFrame{}, t.Name, line)
			return nil
		}
		return structureErrorf(parentPath+"/"+name, line, "unknown element <%s>", name)
	}

	parent := p.parentName()
	if !r.allowedUnder(parent) {
		if parent == "" {
			return structureErrorf("/"+name, line, "root element must be <%s>, got <%s>", rootElement, name)
		}
		return structureErrorf(parentPath+"/"+name, line, "<%s> not allowed in <%s> (expected one of %s)",
			name, parent, strings.Join(children(parent), ", "))
	}

	for _, req := range r.required {
		if _, ok := attr(t, strings.Split(req, "|")...); !ok {
			return missingErrorf(parentPath+"/"+name, line, "attribute %q on <%s>", strings.Split(req, "|")[0], name)
		}
	}

	f, err := p.newFrame(r.kind, t)
	if err != nil {
		return err
	}
	p.push(f, t.Name, line)

	if _, ok := f.(*missingFrame); ok {
		return p.markMissing()
	}
	return nil
}

// push links f under the current top and makes it the top.
func (p *parser) push(f frame, name xml.Name, line int) {
	b := f.base()
	b.name = name.Local
	b.prefix = name.Space
	b.line = line
	if top := p.top(); top != nil {
		b.path = top.base().childPath(b.name)
	} else {
		b.path = "/" + b.name
	}
	p.stack = append(p.stack, f)
}

func (p *parser) newFrame(kind frameKind, t xml.StartElement) (frame, error) {
	switch kind {
	case kindDocument:
		version, _ := attr(t, "version")
		p.root.doc.Version = version
		p.root.doc.Date, _ = attr(t, "date")
		p.root.doc.Time, _ = attr(t, "time")
		p.root.doc.User, _ = attr(t, "user")
		p.root.doc.Origin, _ = attr(t, "origin")
		return &p.root, nil
	case kindDocField, kindText:
		return &textFrame{}, nil
	case kindLanguage:
		f := &languageFrame{}
		f.lang.Lang, _ = attr(t, "lang")
		f.lang.Base, _ = attr(t, "base")
		return f, nil
	case kindControlType:
		f := &controlTypeFrame{}
		f.ct.Name, _ = attr(t, "name")
		f.ct.Status, _ = attr(t, "status")
		return f, nil
	case kindStatisticType:
		f := &statisticTypeFrame{}
		f.st.Name, _ = attr(t, "name")
		return f, nil
	case kindControl:
		f := &controlFrame{}
		f.kind, _ = attr(t, "type", "kind")
		f.value, f.hasValue = attr(t, "value")
		return f, nil
	case kindTable:
		f := &tableFrame{}
		f.table.Name, _ = attr(t, "name")
		f.table.Title, f.hasTitle = attr(t, "title")
		return f, nil
	case kindEdge:
		f := &edgeFrame{}
		f.edge.Axis, _ = attr(t, "axis")
		return f, nil
	case kindGroup:
		f := &groupFrame{}
		f.group.Label, f.hasLabel = attr(t, "label")
		return f, nil
	case kindElement:
		f := &elementFrame{}
		f.elem.Summary = t.Name.Local == "summary"
		f.elem.Code, _ = attr(t, "code")
		if f.elem.Code == "" {
			f.elem.Code, _ = attr(t, "index")
		}
		f.elem.Label, f.hasLabel = attr(t, "label")
		return f, nil
	case kindStatistic:
		f := &statisticFrame{}
		f.typ, _ = attr(t, "type")
		return f, nil
	case kindData:
		table, _ := p.top().(*tableFrame)
		return &dataFrame{table: table}, nil
	case kindRow:
		return &rowFrame{}, nil
	case kindCell:
		return &cellFrame{}, nil
	case kindMissing:
		return &missingFrame{}, nil
	}
	return nil, structureErrorf("", 0, "no frame for kind %d", kind)
}

// markMissing applies an x marker to its parent. Inside r it is a whole
// missing cell; inside c it marks that cell.
func (p *parser) markMissing() error {
	x := p.top().base()
	switch parent := p.stack[len(p.stack)-2].(type) {
	case *rowFrame:
		parent.row.Cells = append(parent.row.Cells, DataCell{Missing: true})
	case *cellFrame:
		if parent.missing {
			return structureErrorf(x.path, x.line, "cell marked missing twice")
		}
		parent.missing = true
	}
	return nil
}

func (p *parser) charData(data xml.CharData) error {
	top := p.top()
	if top == nil {
		if len(bytes.TrimSpace(data)) > 0 {
			return structureErrorf("", p.line(), "text outside the root element")
		}
		return nil
	}
	b := top.base()
	if _, skipping := top.(*skipFrame); skipping {
		return nil
	}
	if grammar[b.name].text {
		b.text.Write(data)
		return nil
	}
	if len(bytes.TrimSpace(data)) > 0 {
		return structureErrorf(b.path, p.line(), "unexpected text %q in <%s>", truncate(string(data), 40), b.name)
	}
	return nil
}

func (p *parser) end(t xml.EndElement) error {
	name := qualified(t.Name)
	top := p.top()
	if top == nil {
		return structureErrorf("/"+t.Name.Local, p.line(), "end tag </%s> without open element", name)
	}
	b := top.base()
	if b.qname() != name {
		return structureErrorf(b.path, p.line(), "end tag </%s> does not match <%s>", name, b.qname())
	}
	p.stack = p.stack[:len(p.stack)-1]

	if _, skipped := top.(*skipFrame); skipped {
		return nil
	}
	return p.attach(top, p.top())
}

// attach finalizes f and appends the result to its parent, in document order.
func (p *parser) attach(f, parent frame) error {
	switch f := f.(type) {
	case *documentFrame:
		f.rootDone = true
		p.opts.logger.Debug("document parsed", "version", f.doc.Version, "tables", len(f.doc.Tables))
		return nil

	case *textFrame:
		return p.attachText(f, parent)

	case *languageFrame:
		p.root.doc.Languages = append(p.root.doc.Languages, f.lang)

	case *controlTypeFrame:
		p.root.doc.ControlTypes = append(p.root.doc.ControlTypes, f.ct)

	case *statisticTypeFrame:
		p.root.doc.StatisticTypes = append(p.root.doc.StatisticTypes, f.st)

	case *controlFrame:
		c, err := buildControl(f, p.opts.label)
		if err != nil {
			return err
		}
		switch parent := parent.(type) {
		case *tableFrame:
			parent.table.Controls = append(parent.table.Controls, c)
		case *documentFrame:
			parent.doc.Controls = append(parent.doc.Controls, c)
		}

	case *tableFrame:
		t, err := buildTable(f)
		if err != nil {
			return err
		}
		p.root.doc.Tables = append(p.root.doc.Tables, t)
		rows, cols := t.Shape()
		p.opts.logger.Debug("table parsed",
			"path", f.path, "title", t.Title, "rows", rows, "columns", cols,
			"statistics", len(t.Statistics), "data_rows", len(t.Rows))

	case *edgeFrame:
		e, err := buildEdge(f)
		if err != nil {
			return err
		}
		table := parent.(*tableFrame)
		switch e.Axis {
		case "r":
			if table.hasRowEdge {
				return structureErrorf(f.path, f.line, "duplicate row edge")
			}
			table.table.RowEdge, table.hasRowEdge = e, true
		case "c":
			if table.hasColEdge {
				return structureErrorf(f.path, f.line, "duplicate column edge")
			}
			table.table.ColumnEdge, table.hasColEdge = e, true
		}

	case *groupFrame:
		g, err := buildGroup(f)
		if err != nil {
			return err
		}
		switch parent := parent.(type) {
		case *edgeFrame:
			parent.edge.Groups = append(parent.edge.Groups, g)
		case *groupFrame:
			parent.group.Groups = append(parent.group.Groups, g)
		}

	case *elementFrame:
		e, err := buildElement(f, p.opts.label)
		if err != nil {
			return err
		}
		group := parent.(*groupFrame)
		if len(group.group.Groups) > 0 {
			return structureErrorf(f.path, f.line, "<%s> after a nested group", f.name)
		}
		group.group.Elements = append(group.group.Elements, e)

	case *statisticFrame:
		table := parent.(*tableFrame)
		table.table.Statistics = append(table.table.Statistics, f.typ)

	case *dataFrame:
		return nil

	case *rowFrame:
		data := parent.(*dataFrame)
		if data.table != nil && data.table.hasColEdge {
			if want := len(data.table.table.ColumnLabels()); len(f.row.Cells) != want {
				return structureErrorf(f.path, f.line, "row has %d cells, want %d (one per column label)", len(f.row.Cells), want)
			}
		}
		if data.table != nil {
			data.table.table.Rows = append(data.table.table.Rows, f.row)
		}

	case *cellFrame:
		c, err := buildCell(f)
		if err != nil {
			return err
		}
		row := parent.(*rowFrame)
		row.row.Cells = append(row.row.Cells, c)

	case *missingFrame:
		return nil
	}
	return nil
}

// attachText moves the text of a t, title, v or document field into its parent.
func (p *parser) attachText(f *textFrame, parent frame) error {
	text := f.directText()
	switch parent := parent.(type) {
	case *documentFrame:
		switch f.name {
		case "date":
			parent.doc.Date = text
		case "time":
			parent.doc.Time = text
		case "user":
			parent.doc.User = text
		case "origin":
			parent.doc.Origin = text
		}
	case *languageFrame:
		parent.lang.Description = p.opts.label(text)
	case *controlTypeFrame:
		parent.ct.Text = p.opts.label(text)
	case *statisticTypeFrame:
		parent.st.Text = p.opts.label(text)
	case *controlFrame:
		if parent.hasValue {
			return structureErrorf(f.path, f.line, "control value given twice")
		}
		parent.value, parent.hasValue = p.opts.label(text), true
	case *tableFrame:
		// a title attribute wins over a title child
		if !parent.hasTitle {
			parent.table.Title, parent.hasTitle = p.opts.label(text), true
		}
	case *groupFrame:
		if !parent.hasLabel {
			parent.group.Label, parent.hasLabel = p.opts.label(text), true
		}
	case *elementFrame:
		if parent.hasLabel {
			return structureErrorf(f.path, f.line, "<%s> label given twice", parent.name)
		}
		parent.elem.Label, parent.hasLabel = p.opts.label(text), true
	case *cellFrame:
		if parent.hasValue {
			return structureErrorf(f.path, f.line, "cell has more than one value")
		}
		parent.value, parent.hasValue = text, true
	}
	return nil
}

// qualified renders a raw token name as written, prefix included.
func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func attr(t xml.StartElement, names ...string) (string, bool) {
	for _, name := range names {
		for _, a := range t.Attr {
			if a.Name.Local == name && a.Name.Space != "xmlns" {
				return a.Value, true
			}
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
