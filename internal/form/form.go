// Package form models admin configuration forms: a read-only table, editable
// text fields bound to configuration keys, and an HTML renderer for both.
package form

import (
	"context"
)

// ConfigBackedForm 基于配置对象的管理表单
type ConfigBackedForm interface {
	// FormID identifies the form in submissions.
	FormID() string
	// EditableConfigNames lists the configuration objects Submit may write.
	EditableConfigNames() []string
	// Build loads everything the form shows.
	Build(ctx context.Context) (*Form, error)
	// Submit validates and persists submitted values.
	Submit(ctx context.Context, values Values) error
}

// Values are submitted field values keyed by field name.
type Values map[string]string

// Get returns the value of name and whether it was submitted.
func (v Values) Get(name string) (string, bool) {
	s, ok := v[name]
	return s, ok
}

// Form is the render model of one admin form.
type Form struct {
	ID       string
	Title    string
	Action   string
	Table    *Table
	Fields   []TextField
	Submit   string
	Messages []string
	Errors   []string

	// set by the handler before rendering
	BuildID string
	Token   string
}

// Field returns the field named name, or nil.
func (f *Form) Field(name string) *TextField {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Table is a captioned, read-only table.
type Table struct {
	Caption string
	Header  []string
	Rows    []Row
}

// Row holds one cell per header column.
type Row struct {
	Cells []Cell
}

// Cell is either a link or plain text.
type Cell struct {
	Link *Link
	Text string
}

// TextField is an editable text input bound to a configuration key.
type TextField struct {
	Name        string
	Label       string
	Description string
	Value       string
	Multiline   bool
	// Markdown adds a rendered preview of Value below the input.
	Markdown bool
	Error    string
}
