package valueobjects

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusSold     Status = "SOLD"
)

var ValidStatuses = map[Status]bool{
	StatusDraft:    true,
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
	StatusSold:     true,
}

// transitions lists the moves reachable through the status machine.
// Admin direct assignment bypasses this table, SOLD excepted.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusPending},
	StatusRejected: {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusSold},
	StatusSold:     {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

func (s Status) IsTerminal() bool {
	return s == StatusSold
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ParseStatus accepts status names case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("invalid property status %q", s)
	}
	return st, nil
}
