package filter

import (
	"context"

	"gorm.io/gorm"
)

type countOptions struct {
	column   string
	distinct bool
}

type Option func(*countOptions)

// Column counts over the given field instead of the primary key.
func Column(field string) Option {
	return func(o *countOptions) { o.column = field }
}

// Distinct counts unique values of the count column rather than rows.
func Distinct() Option {
	return func(o *countOptions) { o.distinct = true }
}

// Count is the single counting primitive behind every dashboard metric and
// pagination total. An empty filter map counts the whole collection; zero
// matching rows yield 0, never an error.
func Count(ctx context.Context, db *gorm.DB, model any, filters Map, opts ...Option) (int64, error) {
	var o countOptions
	for _, opt := range opts {
		opt(&o)
	}

	sch, err := parseSchema(db, model)
	if err != nil {
		return 0, err
	}

	column := o.column
	if column == "" {
		if sch.PrioritizedPrimaryField == nil {
			return 0, &UnknownFieldError{Model: sch.Name, Field: "primary key"}
		}
		column = sch.PrioritizedPrimaryField.DBName
	} else {
		if column, err = lookUpColumn(sch, column); err != nil {
			return 0, err
		}
	}

	sel := "COUNT(`" + column + "`)"
	if o.distinct {
		sel = "COUNT(DISTINCT `" + column + "`)"
	}

	tx := db.WithContext(ctx).Model(model).Select(sel)
	if tx, err = Where(tx, model, filters); err != nil {
		return 0, err
	}

	var n int64
	if err := tx.Scan(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
