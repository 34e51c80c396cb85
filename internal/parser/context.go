package parser

import (
	"sort"

	"github.com/vvka-141/mztabm/internal/model"
)

// Context is the parse-scoped registry of every declared metadata element,
// plus the row counts and columns of each table section.
type Context struct {
	elements map[model.Kind]map[int]model.Element
	rows     map[model.SectionKind]int
	columns  map[model.SectionKind][]string
}

// NewContext returns an empty registry.
func NewContext() *Context {
	return &Context{
		elements: map[model.Kind]map[int]model.Element{},
		rows:     map[model.SectionKind]int{},
		columns:  map[model.SectionKind][]string{},
	}
}

// Register inserts or replaces the element stored under (kind, index).
func (c *Context) Register(kind model.Kind, index int, e model.Element) {
	m, ok := c.elements[kind]
	if !ok {
		m = map[int]model.Element{}
		c.elements[kind] = m
	}
	m[index] = e
}

// Resolve returns the element registered under (kind, index).
func (c *Context) Resolve(kind model.Kind, index int) (model.Element, bool) {
	e, ok := c.elements[kind][index]
	return e, ok
}

// AllOf returns every element of kind in ascending index order.
func (c *Context) AllOf(kind model.Kind) []model.Element {
	m := c.elements[kind]
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]model.Element, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

// RowCount returns the number of rows read for section.
func (c *Context) RowCount(section model.SectionKind) int {
	return c.rows[section]
}

// Columns returns the header columns declared for section.
func (c *Context) Columns(section model.SectionKind) []string {
	return c.columns[section]
}

func (c *Context) setColumns(section model.SectionKind, names []string) {
	c.columns[section] = names
}

func (c *Context) addRow(section model.SectionKind) {
	c.rows[section]++
}
