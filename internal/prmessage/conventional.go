package prmessage

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	conventionalMaxFiles   = 15
	conventionalShownFiles = 10
)

var typePrefix = regexp.MustCompile(`(?i)^(feat|fix|refactor|chore)\b(\([^)]*\))?!?:?\s*`)

// conventionalType picks feat, fix, refactor, then chore, by the first
// non-empty category.
func conventionalType(c Classified) string {
	switch {
	case len(c.Features) > 0:
		return "feat"
	case len(c.Fixes) > 0:
		return "fix"
	case len(c.Improvements) > 0:
		return "refactor"
	default:
		return "chore"
	}
}

// conventionalScope is the top-level directory of the first changed file, if
// that file is not at the repository root.
func conventionalScope(files FileSet) string {
	paths := files.Paths()
	if len(paths) == 0 {
		return ""
	}
	dir, _, found := strings.Cut(paths[0], "/")
	if !found {
		return ""
	}
	return dir
}

func renderConventional(in input) string {
	var b strings.Builder

	header := conventionalType(in.classified)
	if scope := conventionalScope(in.files); scope != "" {
		header += "(" + scope + ")"
	}
	subject := typePrefix.ReplaceAllString(in.commits[0].Subject(), "")
	fmt.Fprintf(&b, "%s: %s\n\n", header, subject)

	if len(in.commits) > 1 {
		b.WriteString("### Included commits:\n\n")
		for _, commit := range in.commits {
			fmt.Fprintf(&b, "- %s (%s)\n", commit.Subject(), commit.ShortHash())
		}
		b.WriteString("\n")
	}

	if len(in.classified.Features) > 0 {
		b.WriteString("### ✨ Features\n")
		for _, commit := range in.classified.Features {
			fmt.Fprintf(&b, "- %s\n", commit.Subject())
		}
		b.WriteString("\n")
	}
	if len(in.classified.Fixes) > 0 {
		b.WriteString("### 🐛 Bug Fixes\n")
		for _, commit := range in.classified.Fixes {
			fmt.Fprintf(&b, "- %s\n", commit.Subject())
		}
		b.WriteString("\n")
	}

	if in.includeFiles && in.files.Len() > 0 {
		fmt.Fprintf(&b, "### 📁 Changed files: %d\n", in.files.Len())
		sorted := in.files.Sorted()
		shown := sorted
		if len(sorted) > conventionalMaxFiles {
			shown = sorted[:conventionalShownFiles]
		}
		for _, path := range shown {
			fmt.Fprintf(&b, "- %s\n", path)
		}
		if extra := len(sorted) - len(shown); extra > 0 {
			fmt.Fprintf(&b, "- ... and %d more file(s)\n", extra)
		}
	}
	return b.String()
}
