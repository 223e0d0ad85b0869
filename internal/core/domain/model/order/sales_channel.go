package order

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// SalesChannel is how the order was sold. Institutional buyers (schools,
// public bodies) always contract a delivery date.
type SalesChannel int

const (
	ChannelUnknown SalesChannel = iota
	Retail
	Wholesale
	Institutional
)

func getSalesChannelStrings() map[SalesChannel]string {
	//nolint:exhaustive // ChannelUnknown is intentionally excluded as it's invalid
	return map[SalesChannel]string{
		Retail:        "retail",
		Wholesale:     "wholesale",
		Institutional: "institutional",
	}
}

// ParseSalesChannel maps an empty value to Retail.
func ParseSalesChannel(s string) (SalesChannel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Retail, nil
	}
	for ch, str := range getSalesChannelStrings() {
		if str == key {
			return ch, nil
		}
	}
	return ChannelUnknown, errs.NewValueIsInvalidErrorWithCause("salesChannel", fmt.Errorf("%q is not a known channel", s))
}

func (c SalesChannel) Validate() error {
	if _, ok := getSalesChannelStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("salesChannel", fmt.Errorf("%d is not a valid channel", c))
	}
	return nil
}

func (c SalesChannel) String() string {
	if str, ok := getSalesChannelStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// RequiresDueDate reports whether orders on this channel must carry a manual due date.
func (c SalesChannel) RequiresDueDate() bool {
	return c == Institutional
}
