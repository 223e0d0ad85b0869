package order

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

const (
	codePrefix        = "OP"
	codeSequenceWidth = 4
	codeMaxLength     = 64
	maxSequence       = 999_999_999
)

var (
	ErrCodeIsNotConstructed = errors.New("Code must be created via FormatCode, FallbackCode or NewCustomCode")

	customCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-/.]*$`)
	sequencePattern   = regexp.MustCompile(`^[0-9]{1,9}$`)
)

// Code is the human readable order identifier, normally OP-<year>-<NNNN>.
type Code struct {
	value string
	guard guard.ConstructorGuard
}

// CodePrefix returns "OP-<year>-", the prefix shared by every generated code of a year.
func CodePrefix(year int) string {
	return fmt.Sprintf("%s-%d-", codePrefix, year)
}

// FormatCode renders the sequence number zero padded to four digits.
// Sequences above 9999 keep growing in width.
//
// Example:
//
//	c, _ := order.FormatCode(2026, 7) // OP-2026-0007
func FormatCode(year, seq int) (Code, error) {
	if year < 1 || year > 9999 {
		return Code{}, errs.NewValueIsOutOfRangeError("year", year, 1, 9999)
	}
	if seq < 1 || seq > maxSequence {
		return Code{}, errs.NewValueIsOutOfRangeError("sequence", seq, 1, maxSequence)
	}
	return Code{
		value: fmt.Sprintf("%s%0*d", CodePrefix(year), codeSequenceWidth, seq),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// FallbackCode is used when the sequence cannot be read. The microsecond
// suffix is unique enough for a degraded path and is ignored by ParseSequence,
// so it never pushes the regular sequence forward.
func FallbackCode(year int, now time.Time) Code {
	return Code{
		value: fmt.Sprintf("%s%d", CodePrefix(year), now.UnixMicro()),
		guard: guard.NewConstructorGuard(),
	}
}

// NewCustomCode accepts a code typed in by a supervisor at creation time.
// It must start with a letter or digit and contain no whitespace.
func NewCustomCode(s string) (Code, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Code{}, errs.NewValueIsRequiredError("code")
	}
	if len(v) > codeMaxLength {
		return Code{}, errs.NewValueIsOutOfRangeError("code length", len(v), 1, codeMaxLength)
	}
	if !customCodePattern.MatchString(v) {
		return Code{}, errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q contains unsupported characters", v))
	}
	return Code{value: v, guard: guard.NewConstructorGuard()}, nil
}

// RestoreCode rebuilds a stored code without re-applying the custom code rules,
// since fallback codes and older imports may not satisfy them.
func RestoreCode(s string) (Code, error) {
	if strings.TrimSpace(s) == "" {
		return Code{}, errs.NewValueIsRequiredError("code")
	}
	return Code{value: s, guard: guard.NewConstructorGuard()}, nil
}

// ParseSequence extracts the numeric suffix of a generated code for year.
// ok is false for codes of other years, custom codes, fallback codes and
// suffixes that are not a plain 1 to 9 digit number.
func ParseSequence(year int, code string) (seq int, ok bool) {
	prefix := CodePrefix(year)
	if !strings.HasPrefix(code, prefix) {
		return 0, false
	}
	tail := code[len(prefix):]
	if !sequencePattern.MatchString(tail) {
		return 0, false
	}
	n, err := strconv.Atoi(tail)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (c Code) Validate() error {
	return c.guard.Validate(ErrCodeIsNotConstructed)
}

func (c Code) String() string {
	return c.value
}

func (c Code) IsEqual(other Code) bool {
	return c.value == other.value
}
