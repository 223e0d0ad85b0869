package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// productionThreshold is the total quantity from which an order is run as a
// production batch instead of a counter sale.
const productionThreshold = 20

// Type is derived from the total quantity and never chosen by the caller.
type Type int

const (
	TypeUnknown Type = iota
	TypeSale
	TypeProduction
)

func getTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeSale:       "sale",
		TypeProduction: "production",
	}
}

func TypeForQuantity(quantity int) Type {
	if quantity >= productionThreshold {
		return TypeProduction
	}
	return TypeSale
}

func ParseType(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a known order type", s))
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
