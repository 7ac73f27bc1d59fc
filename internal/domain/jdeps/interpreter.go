// Package jdeps interprets the textual output of the jdeps analyzer.
package jdeps

import (
	"regexp"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// Output shapes seen in the wild:
//
//	JDK 8 Windows: JDK internal API (rt.jar)
//	JDK 8 Linux:   JDK internal API (JDK removed internal API)
//	JDK 9+:        JDK internal API (java.base)
var (
	internalAPIPattern = regexp.MustCompile(`^(?:.+->\s([a-z\.]+)\s+(JDK (?:removed )?internal API.*))$`)
	profilePattern     = regexp.MustCompile(`^(?:\s+->\s([a-z\.]+)\s+(\S+))$`)
)

// Phase is the lifecycle position of a State.
type Phase int

const (
	Idle Phase = iota
	Consuming
	Finalized
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Consuming:
		return "consuming"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// State accumulates what has been learned from the output so far.
type State struct {
	Phase     Phase
	Offending *domain.PackageMap
	Profiles  *domain.PackageMap
	Lines     []string
}

// NewState returns an empty Idle state.
func NewState() State {
	return State{
		Phase:     Idle,
		Offending: domain.NewPackageMap(),
		Profiles:  domain.NewPackageMap(),
	}
}

// Step folds one output line into s. The returned state supersedes s;
// callers must not keep using s afterwards. Stepping a Finalized state
// returns it unchanged.
func Step(s State, line string) State {
	if s.Phase == Finalized {
		return s
	}
	if s.Offending == nil || s.Profiles == nil {
		fresh := NewState()
		fresh.Lines = s.Lines
		s = fresh
	}
	s.Phase = Consuming
	s.Lines = append(s.Lines, line)

	if m := internalAPIPattern.FindStringSubmatch(line); m != nil {
		s.Offending.Put(m[1], m[2])
		return s
	}
	if m := profilePattern.FindStringSubmatch(line); m != nil {
		s.Profiles.Put(m[1], m[2])
	}
	return s
}

// Finalize ends consumption. The returned state's mappings are never
// touched again by Step.
func Finalize(s State) State {
	if s.Offending == nil || s.Profiles == nil {
		fresh := NewState()
		fresh.Lines = s.Lines
		s = fresh
	}
	s.Phase = Finalized
	return s
}

// Interpret folds every line and finalizes the result.
func Interpret(lines []string) State {
	s := NewState()
	for _, l := range lines {
		s = Step(s, l)
	}
	return Finalize(s)
}
