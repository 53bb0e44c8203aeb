package shell

import "fmt"

// Policy decides what the shell displays after an unresolved navigation.
type Policy string

// Policy constants.
const (
	// PolicyKeep leaves the previously displayed view in place.
	PolicyKeep Policy = "keep"
	// PolicyNotFound displays the not-found view.
	PolicyNotFound Policy = "not_found"
	// PolicyBlank displays nothing.
	PolicyBlank Policy = "blank"
)

// Validate checks if the policy is a known fallback policy.
func (p Policy) Validate() error {
	switch p {
	case PolicyKeep, PolicyNotFound, PolicyBlank:
		return nil
	default:
		return fmt.Errorf("invalid fallback policy: %s (must be keep, not_found, or blank)", p)
	}
}

func (p Policy) normalize() Policy {
	if p.Validate() != nil {
		return PolicyKeep
	}
	return p
}
