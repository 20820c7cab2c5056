// Package filter is the typed-predicate layer behind every counting and
// listing query. A Map pairs column names with predicates (or bare scalars,
// shorthand for equality), all joined by AND.
package filter

import (
	"fmt"
	"time"
)

type kind int

const (
	kindEq kind = iota
	kindNe
	kindGt
	kindGte
	kindLt
	kindLte
	kindBetween
	kindIn
)

// Predicate is a closed set of comparison variants over one column.
// Values are built through the constructors below and never mutated.
type Predicate struct {
	kind  kind
	value any
	lo    any
	hi    any
	set   []any
}

// Eq matches field == v.
func Eq(v any) Predicate { return Predicate{kind: kindEq, value: v} }

// Ne matches field != v.
func Ne(v any) Predicate { return Predicate{kind: kindNe, value: v} }

// Gt matches field > v.
func Gt(v any) Predicate { return Predicate{kind: kindGt, value: v} }

// Gte matches field >= v.
func Gte(v any) Predicate { return Predicate{kind: kindGte, value: v} }

// Lt matches field < v.
func Lt(v any) Predicate { return Predicate{kind: kindLt, value: v} }

// Lte matches field <= v.
func Lte(v any) Predicate { return Predicate{kind: kindLte, value: v} }

// Between matches lo <= field <= hi, bounds inclusive.
func Between(lo, hi any) Predicate { return Predicate{kind: kindBetween, lo: lo, hi: hi} }

// In matches set membership. An empty set matches nothing.
func In(vs ...any) Predicate { return Predicate{kind: kindIn, set: vs} }

// Entry binds one column to a predicate. A non-Predicate Value is sugar
// for Eq(Value).
type Entry struct {
	Field string
	Value any
}

// Map is an ordered conjunction of entries. The same field may appear more
// than once (e.g. a half-open time window built from Gte and Lt).
type Map []Entry

// Date is a calendar day. Predicates carrying a Date compare the column at
// day granularity: the column is truncated to its date before comparison.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// UnknownFieldError reports a filter over a column the model does not have.
// This is a programmer error, not user input; it fails before any query runs.
type UnknownFieldError struct {
	Model string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("model %s has no field %q", e.Model, e.Field)
}
