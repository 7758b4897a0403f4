package store

import (
	"fmt"

	"github.com/samber/lo"
)

// SortKey orders by Field, ascending unless Desc.
type SortKey struct {
	Field string
	Desc  bool
}

// ColumnType is the storage type of an indexed field in the SQL backend.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt
	TypeBool
	TypeTime
)

// Column is a document field the SQL backend copies out of the JSON body so
// it can be sorted, filtered and constrained.
type Column struct {
	Field string // JSON field name
	Name  string // column name
	Type  ColumnType
}

// Policy is the fixed query behaviour of one collection.
type Policy struct {
	Name    string
	Sort    []SortKey
	Filters []string
	Unique  []string
	Columns []Column
	// Indexes lists compound indexes, each a list of sort keys.
	Indexes [][]SortKey
}

// IDField is appended to every sort as the final tie-breaker.
const IDField = "_id"

// Built-in fields every document carries.
const (
	CreatedAtField = "createdAt"
	UpdatedAtField = "updatedAt"
)

// OrderBy returns the policy sort followed by the identity tie-breaker.
func (p Policy) OrderBy() []SortKey {
	out := make([]SortKey, 0, len(p.Sort)+1)
	out = append(out, p.Sort...)
	return append(out, SortKey{Field: IDField, Desc: true})
}

// CheckFilter rejects filters on fields the policy does not expose.
func (p Policy) CheckFilter(f Filter) error {
	for k := range f {
		if !lo.Contains(p.Filters, k) {
			return fmt.Errorf("%s: field %q is not filterable", p.Name, k)
		}
	}
	return nil
}

// Column looks up the SQL column for a JSON field.
func (p Policy) Column(field string) (Column, bool) {
	switch field {
	case IDField:
		return Column{Field: IDField, Name: "id", Type: TypeText}, true
	case CreatedAtField:
		return Column{Field: CreatedAtField, Name: "created_at", Type: TypeTime}, true
	case UpdatedAtField:
		return Column{Field: UpdatedAtField, Name: "updated_at", Type: TypeTime}, true
	}
	return lo.Find(p.Columns, func(c Column) bool { return c.Field == field })
}

// Resource policies.
var (
	ContactPolicy = Policy{
		Name: "contacts",
		Sort: []SortKey{{Field: CreatedAtField, Desc: true}},
		Columns: []Column{
			{Field: "email", Name: "email", Type: TypeText},
		},
		Indexes: [][]SortKey{{{Field: CreatedAtField, Desc: true}}, {{Field: "email"}}},
	}

	ProjectPolicy = Policy{
		Name: "projects",
		Sort: []SortKey{
			{Field: "featured", Desc: true},
			{Field: "order"},
			{Field: CreatedAtField, Desc: true},
		},
		Filters: []string{"category", "status", "featured"},
		Columns: []Column{
			{Field: "category", Name: "category", Type: TypeText},
			{Field: "status", Name: "status", Type: TypeText},
			{Field: "featured", Name: "featured", Type: TypeBool},
			{Field: "order", Name: "sort_order", Type: TypeInt},
		},
		Indexes: [][]SortKey{
			{{Field: "featured", Desc: true}, {Field: "order"}},
			{{Field: "category"}},
			{{Field: "status"}},
		},
	}

	SkillPolicy = Policy{
		Name:    "skills",
		Sort:    []SortKey{{Field: "category"}, {Field: "order"}},
		Filters: []string{"category"},
		Unique:  []string{"name"},
		Columns: []Column{
			{Field: "name", Name: "name", Type: TypeText},
			{Field: "category", Name: "category", Type: TypeText},
			{Field: "order", Name: "sort_order", Type: TypeInt},
		},
		Indexes: [][]SortKey{{{Field: "category"}, {Field: "order"}}},
	}

	JourneyPolicy = Policy{
		Name:    "journeys",
		Sort:    []SortKey{{Field: "startDate", Desc: true}, {Field: "order"}},
		Filters: []string{"type"},
		Columns: []Column{
			{Field: "type", Name: "type", Type: TypeText},
			{Field: "startDate", Name: "start_date", Type: TypeTime},
			{Field: "order", Name: "sort_order", Type: TypeInt},
		},
		Indexes: [][]SortKey{
			{{Field: "type"}, {Field: "startDate", Desc: true}},
			{{Field: "order"}},
		},
	}
)
