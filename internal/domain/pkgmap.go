package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PackageEntry is one package -> value association reported by jdeps.
type PackageEntry struct {
	Package string `json:"package"`
	Value   string `json:"value"`
}

// PackageMap maps fully-qualified package names to a free-text value.
// Iteration follows first insertion; re-putting a key overwrites the value
// in place.
type PackageMap struct {
	m *orderedmap.OrderedMap[string, string]
}

func NewPackageMap() *PackageMap {
	return &PackageMap{m: orderedmap.New[string, string]()}
}

// Put records value for pkg. The last value wins.
func (p *PackageMap) Put(pkg, value string) {
	if p.m == nil {
		p.m = orderedmap.New[string, string]()
	}
	p.m.Set(pkg, value)
}

func (p *PackageMap) Get(pkg string) (string, bool) {
	if p == nil || p.m == nil {
		return "", false
	}
	return p.m.Get(pkg)
}

func (p *PackageMap) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Entries returns the associations in iteration order.
func (p *PackageMap) Entries() []PackageEntry {
	if p == nil || p.m == nil {
		return nil
	}
	entries := make([]PackageEntry, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, PackageEntry{Package: pair.Key, Value: pair.Value})
	}
	return entries
}

// MarshalJSON renders the map as a JSON object in iteration order.
func (p *PackageMap) MarshalJSON() ([]byte, error) {
	if p == nil || p.m == nil {
		return []byte("{}"), nil
	}
	return p.m.MarshalJSON()
}

func (p *PackageMap) UnmarshalJSON(data []byte) error {
	if p.m == nil {
		p.m = orderedmap.New[string, string]()
	}
	return p.m.UnmarshalJSON(data)
}
