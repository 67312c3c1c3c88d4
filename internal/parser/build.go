package parser

import (
	"errors"
	"strings"
)

// Finalizers turn a closed frame into its entity. They hold every derived
// required-field check; the grammar covers nesting and attributes.

func buildTable(f *tableFrame) (Table, error) {
	if !f.hasTitle {
		return Table{}, missingErrorf(f.path, f.line, "attribute \"title\" on <table> (or a title child)")
	}
	if !f.hasRowEdge {
		return Table{}, missingErrorf(f.path, f.line, "edge axis=r")
	}
	if !f.hasColEdge {
		return Table{}, missingErrorf(f.path, f.line, "edge axis=c")
	}
	if err := f.table.Validate(); err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Path = f.path + "/" + e.Path
			e.Line = f.line
		}
		return Table{}, err
	}
	return f.table, nil
}

func buildEdge(f *edgeFrame) (Edge, error) {
	if f.edge.Axis != "r" && f.edge.Axis != "c" {
		return Edge{}, structureErrorf(f.path, f.line, "edge axis %q, want r or c", f.edge.Axis)
	}
	if len(f.edge.Groups) == 0 {
		return Edge{}, missingErrorf(f.path, f.line, "group in edge axis=%s", f.edge.Axis)
	}
	return f.edge, nil
}

func buildGroup(f *groupFrame) (Group, error) {
	if strings.TrimSpace(f.directText()) != "" {
		return Group{}, structureErrorf(f.path, f.line, "unexpected text in <group>")
	}
	// a group without elements stands for one position and needs its label
	if len(f.group.Elements) == 0 && len(f.group.Groups) == 0 && strings.TrimSpace(f.group.Label) == "" {
		return Group{}, missingErrorf(f.path, f.line, "label of <group> without elements")
	}
	return f.group, nil
}

func buildElement(f *elementFrame, label func(string) string) (Element, error) {
	direct := f.directText()
	if f.hasLabel {
		if strings.TrimSpace(direct) != "" {
			return Element{}, structureErrorf(f.path, f.line, "<%s> mixes text and a label", f.name)
		}
	} else {
		f.elem.Label = label(direct)
	}
	if strings.TrimSpace(f.elem.Label) == "" {
		return Element{}, missingErrorf(f.path, f.line, "label of <%s>", f.name)
	}
	return f.elem, nil
}

func buildControl(f *controlFrame, label func(string) string) (Control, error) {
	direct := f.directText()
	if f.hasValue {
		if strings.TrimSpace(direct) != "" {
			return Control{}, structureErrorf(f.path, f.line, "control %q mixes text and a value", f.kind)
		}
		return Control{Kind: f.kind, Value: f.value}, nil
	}
	return Control{Kind: f.kind, Value: label(direct)}, nil
}

func buildCell(f *cellFrame) (DataCell, error) {
	direct := f.directText()
	switch {
	case f.missing && f.hasValue:
		return DataCell{}, structureErrorf(f.path, f.line, "cell has a value and a missing marker")
	case f.missing:
		if strings.TrimSpace(direct) != "" {
			return DataCell{}, structureErrorf(f.path, f.line, "missing cell has text")
		}
		return DataCell{Missing: true}, nil
	case f.hasValue:
		if strings.TrimSpace(direct) != "" {
			return DataCell{}, structureErrorf(f.path, f.line, "cell mixes text and <v>")
		}
		return DataCell{Value: f.value}, nil
	default:
		return DataCell{Value: direct}, nil
	}
}
