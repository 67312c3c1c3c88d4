package parser

import "slices"

// frameKind tags what a stack frame is building.
type frameKind int

const (
	kindDocument frameKind = iota + 1
	kindDocField           // date, time, user, origin
	kindLanguage
	kindControlType
	kindStatisticType
	kindControl
	kindTable
	kindText // t, title, v
	kindEdge
	kindGroup
	kindElement
	kindStatistic
	kindData
	kindRow
	kindCell
	kindMissing
)

// rule describes one element of the XtabML grammar.
type rule struct {
	kind     frameKind
	parents  []string // empty means root
	required []string // attributes, first match of each alias group wins
	text     bool     // character data is content, not noise
}

const rootElement = "xtab"

// grammar is the only description of element nesting, required attributes
// and text-bearing elements. Start and end tag handling both consult it.
var grammar = map[string]rule{
	"xtab": {kind: kindDocument},

	"date":   {kind: kindDocField, parents: []string{"xtab"}, text: true},
	"time":   {kind: kindDocField, parents: []string{"xtab"}, text: true},
	"user":   {kind: kindDocField, parents: []string{"xtab"}, text: true},
	"origin": {kind: kindDocField, parents: []string{"xtab"}, text: true},

	"language":      {kind: kindLanguage, parents: []string{"xtab"}, required: []string{"lang"}},
	"controltype":   {kind: kindControlType, parents: []string{"xtab"}, required: []string{"name"}},
	"statistictype": {kind: kindStatisticType, parents: []string{"xtab"}, required: []string{"name"}},

	"control": {kind: kindControl, parents: []string{"xtab", "table"}, required: []string{"type|kind"}, text: true},

	"table": {kind: kindTable, parents: []string{"xtab"}},
	"title": {kind: kindText, parents: []string{"table"}, text: true},
	"t": {kind: kindText, parents: []string{
		"language", "controltype", "statistictype", "control",
		"table", "group", "element", "summary",
	}, text: true},

	"edge":    {kind: kindEdge, parents: []string{"table"}, required: []string{"axis"}},
	"group":   {kind: kindGroup, parents: []string{"edge", "group"}},
	"element": {kind: kindElement, parents: []string{"group"}, text: true},
	"summary": {kind: kindElement, parents: []string{"group"}, text: true},

	"statistic": {kind: kindStatistic, parents: []string{"table"}, required: []string{"type"}},

	"data": {kind: kindData, parents: []string{"table"}},
	"r":    {kind: kindRow, parents: []string{"data"}},
	"c":    {kind: kindCell, parents: []string{"r"}, text: true},
	"v":    {kind: kindText, parents: []string{"c"}, text: true},
	"x":    {kind: kindMissing, parents: []string{"r", "c"}},
}

func (r rule) allowedUnder(parent string) bool {
	if len(r.parents) == 0 {
		return parent == ""
	}
	for _, p := range r.parents {
		if p == parent {
			return true
		}
	}
	return false
}

// children lists the elements legal directly under parent, sorted.
func children(parent string) []string {
	var names []string
	for name, r := range grammar {
		if parent != "" && r.allowedUnder(parent) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
