package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a lower-cased, validated address.
type Email string

func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch {
	case normalized == "":
		return "", fmt.Errorf("email cannot be empty")
	case len(normalized) > 255:
		return "", fmt.Errorf("email cannot exceed 255 characters")
	case !emailRegex.MatchString(normalized):
		return "", fmt.Errorf("invalid email format: %s", value)
	}
	return Email(normalized), nil
}

func (e Email) String() string {
	return string(e)
}
