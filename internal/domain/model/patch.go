package model

import "github.com/shopspring/decimal"

// Assignment is one column of a partial update. Truthy mirrors whether the supplied value
// counts towards the "at least one field" check of a PATCH body.
// Cast, when set, is the column type the text-encoded Value is converted to.
type Assignment struct {
	Column string
	Value  interface{}
	Cast   string
	Truthy bool
}

// Assignments collects the non-null fields of a PATCH body in a fixed column order.
type Assignments []Assignment

func (a Assignments) String(column string, v *string) Assignments {
	if v == nil {
		return a
	}
	return append(a, Assignment{Column: column, Value: *v, Truthy: *v != ""})
}

func (a Assignments) Int(column string, v *int64) Assignments {
	if v == nil {
		return a
	}
	return append(a, Assignment{Column: column, Value: *v, Truthy: *v != 0})
}

func (a Assignments) Decimal(column string, v *decimal.Decimal) Assignments {
	if v == nil {
		return a
	}
	return append(a, Assignment{Column: column, Value: v.String(), Cast: "numeric", Truthy: !v.IsZero()})
}

func (a Assignments) Timestamp(column string, v *string) Assignments {
	if v == nil {
		return a
	}
	return append(a, Assignment{Column: column, Value: *v, Cast: "timestamptz", Truthy: *v != ""})
}

// HasTruthy reports whether any supplied field is present and non-empty.
func (a Assignments) HasTruthy() bool {
	for _, as := range a {
		if as.Truthy {
			return true
		}
	}
	return false
}
