package state

import "fmt"

// MutationPolicy decides what happens when a mutation is issued for a project
// that already has one in flight.
type MutationPolicy string

const (
	// PolicyPermissive lets concurrent mutations race. The in-flight marker
	// reflects only the most recently issued one.
	PolicyPermissive MutationPolicy = "permissive"
	// PolicyReject fails the second mutation with ErrMutationInFlight.
	PolicyReject MutationPolicy = "reject"
	// PolicyQueue makes the second mutation wait for the first to resolve.
	PolicyQueue MutationPolicy = "queue"
)

// ParseMutationPolicy converts a raw value; the empty string is permissive.
func ParseMutationPolicy(raw string) (MutationPolicy, error) {
	switch MutationPolicy(raw) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyReject:
		return PolicyReject, nil
	case PolicyQueue:
		return PolicyQueue, nil
	default:
		return "", fmt.Errorf("unknown mutation policy %q", raw)
	}
}
