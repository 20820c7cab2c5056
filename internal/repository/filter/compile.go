package filter

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// schemaCache is shared across all Parse calls; gorm keys it by model type.
var schemaCache = &sync.Map{}

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	return schema.Parse(model, schemaCache, db.NamingStrategy)
}

// lookUpColumn resolves a filter field to its DB column name, failing fast
// on fields the model does not declare.
func lookUpColumn(sch *schema.Schema, field string) (string, error) {
	f := sch.LookUpField(field)
	if f == nil || f.DBName == "" {
		return "", &UnknownFieldError{Model: sch.Name, Field: field}
	}
	return f.DBName, nil
}

type condition struct {
	expr string
	args []any
}

// compileEntry turns one (column, value) pair into a WHERE fragment.
// Date payloads compare by calendar day, so the column gets wrapped in
// DATE() and the bound value is the day string.
func compileEntry(column string, value any) condition {
	quoted := "`" + column + "`"

	pred, ok := value.(Predicate)
	if !ok {
		pred = Eq(value)
	}

	operand := func(v any) (string, any) {
		if d, isDate := v.(Date); isDate {
			return "DATE(" + quoted + ")", d.String()
		}
		return quoted, v
	}

	switch pred.kind {
	case kindEq:
		lhs, arg := operand(pred.value)
		return condition{expr: lhs + " = ?", args: []any{arg}}
	case kindNe:
		lhs, arg := operand(pred.value)
		return condition{expr: lhs + " <> ?", args: []any{arg}}
	case kindGt:
		lhs, arg := operand(pred.value)
		return condition{expr: lhs + " > ?", args: []any{arg}}
	case kindGte:
		lhs, arg := operand(pred.value)
		return condition{expr: lhs + " >= ?", args: []any{arg}}
	case kindLt:
		lhs, arg := operand(pred.value)
		return condition{expr: lhs + " < ?", args: []any{arg}}
	case kindLte:
		lhs, arg := operand(pred.value)
		return condition{expr: lhs + " <= ?", args: []any{arg}}
	case kindBetween:
		lhs, lo := operand(pred.lo)
		_, hi := operand(pred.hi)
		return condition{expr: lhs + " BETWEEN ? AND ?", args: []any{lo, hi}}
	case kindIn:
		// an empty membership set matches nothing; make that explicit
		// instead of leaving it to the dialect's IN (NULL) rendering
		if len(pred.set) == 0 {
			return condition{expr: "1 = 0"}
		}
		return condition{expr: quoted + " IN ?", args: []any{pred.set}}
	default:
		panic(fmt.Sprintf("filter: unhandled predicate kind %d", pred.kind))
	}
}

// Where applies the compiled conjunction of filters to tx. The model's
// schema validates every field name before anything touches the database.
func Where(tx *gorm.DB, model any, filters Map) (*gorm.DB, error) {
	if len(filters) == 0 {
		return tx, nil
	}

	sch, err := parseSchema(tx, model)
	if err != nil {
		return nil, err
	}

	for _, entry := range filters {
		column, err := lookUpColumn(sch, entry.Field)
		if err != nil {
			return nil, err
		}
		cond := compileEntry(column, entry.Value)
		tx = tx.Where(cond.expr, cond.args...)
	}
	return tx, nil
}
