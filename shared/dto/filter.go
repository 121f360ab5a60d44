package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// Operators understood by Filter. FilterOperatorNone renders a predicate no row satisfies.
const (
	FilterOperatorEq     = "eq"
	FilterOperatorNotEq  = "not_eq"
	FilterOperatorIn     = "in"
	FilterOperatorIsNull = "is_null"
	FilterOperatorNone   = "none"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is a single predicate on Table.Field bound to a named sqlx argument.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq in is_null none"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

// expand binds every element of a slice value as name_0, name_1, ...
func (f *Filter) expand(args map[string]any) []string {
	val := reflect.ValueOf(f.Value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[f.argName()] = f.Value

		return []string{":" + f.argName()}
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		name := fmt.Sprintf("%s_%d", f.argName(), idx)
		args[name] = val.Index(idx).Interface()
		named[idx] = ":" + name
	}

	return named
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	switch f.Operator {
	case FilterOperatorEq, FilterOperatorNotEq:
		comparator := "="
		if f.Operator == FilterOperatorNotEq {
			comparator = "!="
		}

		args[f.argName()] = f.Value

		return fmt.Sprintf("%s %s :%s", f.column(), comparator, f.argName()), args
	case FilterOperatorIn:
		named := f.expand(args)
		if len(named) == 0 {
			return "1 = 0", args
		}

		return fmt.Sprintf("%s IN (%s)", f.column(), strings.Join(named, ", ")), args
	case FilterOperatorIsNull:
		return f.column() + " IS NULL", args
	case FilterOperatorNone:
		return "(1 = 0)", args
	default:
		return "", args
	}
}

// FilterGroup joins Filters and nested FilterGroups with Operator, AND when unset.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}
