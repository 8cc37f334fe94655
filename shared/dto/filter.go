package dto

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	FilterOperatorEq = "eq"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type Filter struct {
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq"`
}

// ToBSON renders the filter as a single-field equality query.
func (f *Filter) ToBSON() bson.D {
	if f.Operator != FilterOperatorEq {
		return bson.D{}
	}

	return bson.D{{Key: f.Field, Value: f.Value}}
}

// FilterGroup is the conjunction of its filters.
type FilterGroup struct {
	Filters []any
}

// ToBSON combines the nested filters with $and. A group with a single clause
// collapses to that clause; an empty group matches everything.
func (f *FilterGroup) ToBSON() bson.D {
	clauses := bson.A{}

	for _, filter := range f.Filters {
		var doc bson.D

		switch fill := filter.(type) {
		case Filter:
			doc = fill.ToBSON()
		case FilterGroup:
			doc = fill.ToBSON()
		}

		if len(doc) > 0 {
			clauses = append(clauses, doc)
		}
	}

	switch len(clauses) {
	case 0:
		return bson.D{}
	case 1:
		doc, _ := clauses[0].(bson.D)

		return doc
	}

	return bson.D{{Key: "$and", Value: clauses}}
}

type Sort struct {
	Field string
	Dir   string
}

// ToBSON returns the sort document, or nil when no field is set.
func (s *Sort) ToBSON() bson.D {
	if s.Field == "" {
		return nil
	}

	order := 1
	if s.Dir == SortDirDesc {
		order = -1
	}

	return bson.D{{Key: s.Field, Value: order}}
}
