package queries

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// StatusFilter narrows ListOrdersQuery by order status.
type StatusFilter string

const (
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
	FilterAll       StatusFilter = "all"
)

// ParseStatusFilter maps an empty value to FilterActive, the board's default view.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterActive, nil
	case FilterActive, FilterCompleted, FilterAll:
		return f, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not active, completed or all", s))
	}
}

// ListOrdersQuery lists order headers newest first.
type ListOrdersQuery struct {
	filter StatusFilter
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(filter StatusFilter) (ListOrdersQuery, error) {
	if _, err := ParseStatusFilter(string(filter)); err != nil {
		return ListOrdersQuery{}, err
	}
	if filter == "" {
		filter = FilterActive
	}
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() StatusFilter {
	return q.filter
}
