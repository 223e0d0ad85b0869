package stage

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Stage is one phase of production. The zero value is Unknown and never valid.
type Stage int

const (
	Unknown Stage = iota
	Sale
	Design
	Printing
	Sewing
	QualityReview
	Dispatch
)

func getStageIdentifiers() map[Stage]string {
	//nolint:exhaustive // Unknown has no identifier
	return map[Stage]string{
		Sale:          "sale",
		Design:        "design",
		Printing:      "printing",
		Sewing:        "sewing",
		QualityReview: "quality_review",
		Dispatch:      "dispatch",
	}
}

func getStageLabels() map[Stage]string {
	//nolint:exhaustive // Unknown has no label
	return map[Stage]string{
		Sale:          "Sale",
		Design:        "Design",
		Printing:      "Printing",
		Sewing:        "Sewing",
		QualityReview: "Quality review",
		Dispatch:      "Dispatch",
	}
}

// getLegacyIdentifiers maps the identifiers used by the first version of the
// shop floor tooling, still present in exported spreadsheets and old rows.
func getLegacyIdentifiers() map[string]Stage {
	return map[string]Stage{
		"venta":            Sale,
		"diseno":           Design,
		"estampado":        Printing,
		"confeccion":       Sewing,
		"revision_calidad": QualityReview,
		"despacho":         Dispatch,
	}
}

// All returns the catalog in production order.
func All() []Stage {
	return []Stage{Sale, Design, Printing, Sewing, QualityReview, Dispatch}
}

// First returns the stage every new order starts in.
func First() Stage {
	return Sale
}

// Terminal returns the last stage. Approving it completes the order.
func Terminal() Stage {
	return Dispatch
}

// Parse converts an external identifier into a Stage.
//
// Both the current identifiers ("quality_review") and the legacy ones
// ("revision_calidad") are accepted, case-insensitively and ignoring
// surrounding whitespace. Anything else returns a ValueIsInvalidError.
//
// Example:
//
//	s, err := stage.Parse(c.Param("stage"))
//	if err != nil {
//	    return err // 400 at the HTTP boundary
//	}
func Parse(s string) (Stage, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for st, id := range getStageIdentifiers() {
		if id == key {
			return st, nil
		}
	}
	if st, ok := getLegacyIdentifiers()[key]; ok {
		return st, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a known stage", s))
}

func (s Stage) Validate() error {
	if _, ok := getStageIdentifiers()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the stable identifier used in storage and on the wire.
func (s Stage) String() string {
	if id, ok := getStageIdentifiers()[s]; ok {
		return id
	}
	return "unknown"
}

// Label returns the human readable name shown to operators.
func (s Stage) Label() string {
	if l, ok := getStageLabels()[s]; ok {
		return l
	}
	return "Unknown"
}

// Index returns the zero-based position in the catalog, or -1 for invalid stages.
func (s Stage) Index() int {
	if s.Validate() != nil {
		return -1
	}
	return int(s - Sale)
}

// Successor returns the next stage. ok is false for Dispatch and invalid stages.
func (s Stage) Successor() (next Stage, ok bool) {
	if s.Validate() != nil || s == Terminal() {
		return Unknown, false
	}
	return s + 1, true
}

func (s Stage) IsTerminal() bool {
	return s == Terminal()
}

// RequiresEvidence is false for the quality gate, which is approved with an
// explicit acknowledgment instead of an attached file.
func (s Stage) RequiresEvidence() bool {
	return s.Validate() == nil && s != QualityReview
}
