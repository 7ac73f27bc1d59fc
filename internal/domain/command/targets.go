// Package command turns an analysis configuration into a jdeps command line.
package command

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

// PathSet is a set of filesystem paths that remembers first insertion order.
type PathSet struct {
	m *orderedmap.OrderedMap[string, struct{}]
}

func NewPathSet() *PathSet {
	return &PathSet{m: orderedmap.New[string, struct{}]()}
}

// Add inserts p unless an equal path is already present.
func (s *PathSet) Add(p string) {
	key := filepath.Clean(p)
	if _, ok := s.m.Get(key); ok {
		return
	}
	s.m.Set(key, struct{}{})
}

func (s *PathSet) Contains(p string) bool {
	_, ok := s.m.Get(filepath.Clean(p))
	return ok
}

func (s *PathSet) Len() int { return s.m.Len() }

// Paths returns the members in insertion order.
func (s *PathSet) Paths() []string {
	out := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// TargetInput is everything target assembly needs, with paths already
// resolved by the caller.
type TargetInput struct {
	ClassesDir       string
	Classpath        []string
	IncludeClasspath bool
	Includes         []string
	Excludes         []string
	Artifacts        []domain.Artifact
}

// AssembleTargets builds the set of paths jdeps analyzes: the classes
// directory, the classpath when requested, and every artifact whose
// groupId:artifactId matches an include pattern and no exclude pattern.
// Exclude patterns only narrow the include matches.
func AssembleTargets(in TargetInput) (*PathSet, error) {
	set := NewPathSet()
	set.Add(in.ClassesDir)

	if in.IncludeClasspath {
		for _, p := range in.Classpath {
			set.Add(p)
		}
	}

	if len(in.Includes) == 0 {
		return set, nil
	}

	for _, a := range in.Artifacts {
		key := a.VersionlessKey()

		included, err := matchesAny(in.Includes, key)
		if err != nil {
			return nil, err
		}
		if !included {
			continue
		}

		excluded, err := matchesAny(in.Excludes, key)
		if err != nil {
			return nil, err
		}
		if excluded {
			continue
		}

		set.Add(a.File)
	}

	return set, nil
}

func matchesAny(patterns []string, key string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, key)
		if err != nil {
			return false, fmt.Errorf("matching %q against pattern %q: %w", key, p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Target resolves the full analysis target: the target set plus the
// classpath entries that are not already analyzed.
func Target(in TargetInput) (domain.AnalysisTarget, error) {
	set, err := AssembleTargets(in)
	if err != nil {
		return domain.AnalysisTarget{}, &domain.ArgumentError{Err: err}
	}

	context := NewPathSet()
	for _, p := range in.Classpath {
		if !set.Contains(p) {
			context.Add(p)
		}
	}

	target := domain.AnalysisTarget{Targets: set.Paths()}
	if context.Len() > 0 {
		target.Classpath = context.Paths()
	}
	return target, nil
}
