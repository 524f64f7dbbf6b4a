package model

// StatusState is the internal tri-state a provider commit status maps to.
type StatusState string

const (
	StatusPending StatusState = "pending"
	StatusOK      StatusState = "ok"
	StatusError   StatusState = "error"
)

// ParseStatusState maps the provider's raw status string to the internal
// tri-state. The second return is false for states outside the fixed
// table; those must never be forwarded downstream.
func ParseStatusState(raw string) (StatusState, bool) {
	switch raw {
	case "pending":
		return StatusPending, true
	case "success":
		return StatusOK, true
	case "error", "failure":
		return StatusError, true
	default:
		return "", false
	}
}
