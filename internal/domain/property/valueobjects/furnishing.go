package valueobjects

import (
	"fmt"
	"strings"
)

// Furnishing is a single tagged value, so exactly one furnishing state holds by construction.
type Furnishing string

const (
	Furnished     Furnishing = "FURNISHED"
	SemiFurnished Furnishing = "SEMI_FURNISHED"
	Unfurnished   Furnishing = "UNFURNISHED"
)

func (f Furnishing) String() string {
	return string(f)
}

func (f Furnishing) IsValid() bool {
	switch f {
	case Furnished, SemiFurnished, Unfurnished:
		return true
	}
	return false
}

// Flags returns the legacy (furnished, semiFurnished, unfurnished) booleans.
func (f Furnishing) Flags() (furnished, semiFurnished, unfurnished bool) {
	return f == Furnished, f == SemiFurnished, f == Unfurnished
}

// ParseFurnishing accepts FURNISHED, SEMI_FURNISHED or UNFURNISHED, also with
// dashes or spaces ("semi-furnished").
func ParseFurnishing(s string) (Furnishing, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
	f := Furnishing(norm)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid furnishing %q", s)
	}
	return f, nil
}
