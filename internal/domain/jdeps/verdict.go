package jdeps

import (
	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// Verdict is the policy decision over a finalized State.
type Verdict struct {
	Passed  bool
	Warning string
	Err     error
}

// Decide turns offending packages into a verdict. With failOnWarning the
// verdict fails with a *domain.PolicyViolationError; without it the same
// listing is returned as a warning.
func Decide(s State, failOnWarning bool) Verdict {
	if s.Offending.Len() == 0 {
		return Verdict{Passed: true}
	}

	entries := s.Offending.Entries()
	if failOnWarning {
		return Verdict{Err: &domain.PolicyViolationError{Offending: entries}}
	}
	return Verdict{Passed: true, Warning: domain.FormatOffending(entries)}
}
