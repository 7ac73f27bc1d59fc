package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Property keys accepted on the command line as -D key=value. They follow
// the user-property names of the Maven jdeps plugin.
const (
	PropFailOnWarning     = "jdeps.failOnWarning"
	PropTestFailOnWarning = "jdeps.test.failOnWarning"
	PropMultiRelease      = "jdeps.multiRelease"
	PropIncludeClasspath  = "jdeps.includeClasspath"
	PropDotOutput         = "jdeps.dotOutput"
	PropVerbose           = "jdeps.verbose"
	PropInclude           = "jdeps.include"
	PropAPIOnly           = "jdeps.apionly"
	PropProfile           = "jdeps.profile"
	PropRecursive         = "jdeps.recursive"
	PropModule            = "jdeps.module"
	PropJDKInternals      = "jdeps.jdkinternals"
)

type propertySetter func(c *AnalysisConfig, v string) error

var propertySetters = map[string]propertySetter{
	PropFailOnWarning:     setBoolPtr(func(c *AnalysisConfig) **bool { return &c.FailOnWarning }),
	PropTestFailOnWarning: setBoolPtr(func(c *AnalysisConfig) **bool { return &c.Test.FailOnWarning }),
	PropIncludeClasspath:  setBoolPtr(func(c *AnalysisConfig) **bool { return &c.IncludeClasspath }),
	PropAPIOnly:           setBool(func(c *AnalysisConfig) *bool { return &c.APIOnly }),
	PropProfile:           setBool(func(c *AnalysisConfig) *bool { return &c.Profile }),
	PropRecursive:         setBool(func(c *AnalysisConfig) *bool { return &c.Recursive }),
	PropJDKInternals:      setBool(func(c *AnalysisConfig) *bool { return &c.JDKInternals }),
	PropMultiRelease:      setString(func(c *AnalysisConfig) *string { return &c.MultiRelease }),
	PropDotOutput:         setString(func(c *AnalysisConfig) *string { return &c.DotOutput }),
	PropVerbose:           setString(func(c *AnalysisConfig) *string { return &c.Verbose }),
	PropInclude:           setString(func(c *AnalysisConfig) *string { return &c.Include }),
	PropModule:            setString(func(c *AnalysisConfig) *string { return &c.Module }),
}

func setBool(field func(*AnalysisConfig) *bool) propertySetter {
	return func(c *AnalysisConfig, v string) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setBoolPtr(field func(*AnalysisConfig) **bool) propertySetter {
	return func(c *AnalysisConfig, v string) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		*field(c) = &b
		return nil
	}
}

func setString(field func(*AnalysisConfig) *string) propertySetter {
	return func(c *AnalysisConfig, v string) error {
		*field(c) = cast.ToString(v)
		return nil
	}
}

// PropertyKeys lists the recognized -D keys in sorted order.
func PropertyKeys() []string {
	keys := make([]string, 0, len(propertySetters))
	for k := range propertySetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseProperty splits "key=value". A bare "key" means "key=true", as with
// Maven's -Dflag.
func ParseProperty(raw string) (string, string) {
	key, value, found := strings.Cut(raw, "=")
	if !found {
		return strings.TrimSpace(key), "true"
	}
	return strings.TrimSpace(key), value
}

// ApplyProperties overlays -D style properties on c. Properties are
// applied in the given order so later ones win.
func (c AnalysisConfig) ApplyProperties(props []string) (AnalysisConfig, error) {
	for _, raw := range props {
		key, value := ParseProperty(raw)
		set, ok := propertySetters[key]
		if !ok {
			return c, fmt.Errorf("unknown property %q (valid: %s)", key, strings.Join(PropertyKeys(), ", "))
		}
		if err := set(&c, value); err != nil {
			return c, fmt.Errorf("property %s: %w", key, err)
		}
	}
	return c, nil
}
