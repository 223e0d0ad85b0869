package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

const (
	maxUnitsPerItem = 100_000
	maxLeadTimeDays = 365
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// ProductSnapshot is the catalog data copied into a line item when the order
// is placed. Later catalog edits never reach an existing order.
type ProductSnapshot struct {
	ProductID    kernel.UUID // zero when the product was typed in by hand
	ProductName  string
	ImageRef     string
	Category     string
	SKU          string
	Units        int
	LeadTimeDays int
}

// LineItem is immutable after creation.
type LineItem struct {
	id       kernel.UUID
	snapshot ProductSnapshot
	guard    guard.ConstructorGuard
}

// NewLineItem validates the snapshot and assigns a fresh id.
//
// Rules:
//   - ProductName is required
//   - Units must be between 1 and 100000
//   - LeadTimeDays must be between 0 and 365
//   - ImageRef, when set, must be an absolute http(s) URL
func NewLineItem(snapshot ProductSnapshot) (LineItem, error) {
	return RestoreLineItem(kernel.NewUUID(), snapshot)
}

// RestoreLineItem rebuilds a stored line item.
func RestoreLineItem(id kernel.UUID, snapshot ProductSnapshot) (LineItem, error) {
	snapshot.ProductName = strings.TrimSpace(snapshot.ProductName)
	snapshot.ImageRef = strings.TrimSpace(snapshot.ImageRef)
	snapshot.Category = strings.TrimSpace(snapshot.Category)
	snapshot.SKU = strings.TrimSpace(snapshot.SKU)

	if err := errors.Join(
		id.Validate(),
		validateProductName(snapshot.ProductName),
		validateUnits(snapshot.Units),
		validateLeadTime(snapshot.LeadTimeDays),
		validateImageRef(snapshot.ImageRef),
	); err != nil {
		return LineItem{}, err
	}

	return LineItem{id: id, snapshot: snapshot, guard: guard.NewConstructorGuard()}, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) ID() kernel.UUID {
	return li.id
}

// Snapshot returns a copy of the captured product data.
func (li LineItem) Snapshot() ProductSnapshot {
	return li.snapshot
}

func (li LineItem) Units() int {
	return li.snapshot.Units
}

func (li LineItem) LeadTimeDays() int {
	return li.snapshot.LeadTimeDays
}

// ProductRef is the SKU when present, otherwise the product name.
func (li LineItem) ProductRef() string {
	if li.snapshot.SKU != "" {
		return li.snapshot.SKU
	}
	return li.snapshot.ProductName
}

func validateProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	return nil
}

func validateUnits(units int) error {
	if units < 1 || units > maxUnitsPerItem {
		return errs.NewValueIsOutOfRangeError("units", units, 1, maxUnitsPerItem)
	}
	return nil
}

func validateLeadTime(days int) error {
	if days < 0 || days > maxLeadTimeDays {
		return errs.NewValueIsOutOfRangeError("leadTimeDays", days, 0, maxLeadTimeDays)
	}
	return nil
}

func validateImageRef(ref string) error {
	if ref == "" {
		return nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("imageRef", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("imageRef", fmt.Errorf("%q is not an http(s) URL", ref))
	}
	return nil
}
