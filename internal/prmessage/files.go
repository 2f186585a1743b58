package prmessage

import (
	"slices"

	"github.com/roivaz/pr-messages/internal/analysis"
)

// FileSet is the distinct set of paths touched by a list of commits, in
// first-appearance order. Paths compare exactly.
type FileSet struct {
	paths []string
}

func CollectFiles(commits []analysis.CommitRecord) FileSet {
	seen := map[string]struct{}{}
	var fs FileSet
	for _, c := range commits {
		for _, f := range c.Files {
			if _, ok := seen[f.Path]; ok {
				continue
			}
			seen[f.Path] = struct{}{}
			fs.paths = append(fs.paths, f.Path)
		}
	}
	return fs
}

func (s FileSet) Len() int { return len(s.paths) }

// Paths returns the paths in first-appearance order.
func (s FileSet) Paths() []string { return slices.Clone(s.paths) }

// Sorted returns the paths in lexicographic order.
func (s FileSet) Sorted() []string {
	out := slices.Clone(s.paths)
	slices.Sort(out)
	return out
}
