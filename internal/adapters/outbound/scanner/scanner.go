package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jdepscheck/jdepscheck/internal/domain"
)

const versionsDir = "META-INF/versions"

// ClassScanner implements domain.ClassScanner by walking a classes directory.
type ClassScanner struct{}

func New() *ClassScanner {
	return &ClassScanner{}
}

// Scan counts the .class files under classesDir and collects their
// packages. Classes under META-INF/versions/<n>/ are attributed to the
// package they would have in the unversioned layout.
func (s *ClassScanner) Scan(classesDir string) (*domain.ClassInventory, error) {
	absPath, err := filepath.Abs(classesDir)
	if err != nil {
		return nil, err
	}

	inv := &domain.ClassInventory{Root: absPath}
	packages := make(map[string]bool)

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".class") {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if rest, ok := strings.CutPrefix(relPath, versionsDir+"/"); ok {
			inv.Versioned = true
			// Drop the release number.
			_, relPath, _ = strings.Cut(rest, "/")
		}

		inv.ClassFiles++
		if d.Name() == "module-info.class" {
			return nil
		}
		if dir := pathDir(relPath); dir != "" {
			packages[strings.ReplaceAll(dir, "/", ".")] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for p := range packages {
		inv.Packages = append(inv.Packages, p)
	}
	sort.Strings(inv.Packages)
	return inv, nil
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}
