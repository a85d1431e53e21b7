package agent

import "errors"

var (
	ErrAgentNotFound  = errors.New("agent profile not found")
	ErrAgentSuspended = errors.New("agent is suspended")
)
