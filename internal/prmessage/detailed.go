package prmessage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roivaz/pr-messages/internal/analysis"
)

var (
	featPrefix = regexp.MustCompile(`(?i)^feat\b(\([^)]*\))?!?:?\s*`)
	fixPrefix  = regexp.MustCompile(`(?i)^fix\b(\([^)]*\))?!?:?\s*`)
)

var testChecklist = []string{
	"Unit tests passing",
	"Integration tests executed",
	"Manual testing performed",
}

func detailedTitle(in input) string {
	switch {
	case len(in.classified.Features) > 0:
		return "feat: " + featPrefix.ReplaceAllString(in.classified.Features[0].Subject(), "")
	case len(in.classified.Fixes) > 0:
		return "fix: " + fixPrefix.ReplaceAllString(in.classified.Fixes[0].Subject(), "")
	default:
		return in.commits[0].Subject()
	}
}

func renderDetailed(in input) string {
	var b strings.Builder
	c := in.classified

	fmt.Fprintf(&b, "%s\n\n", detailedTitle(in))

	b.WriteString("## 📋 Summary\n\n")
	fmt.Fprintf(&b, "This PR contains **%d commit(s)** that implement ", len(in.commits))
	var counts []string
	if n := len(c.Features); n > 0 {
		counts = append(counts, fmt.Sprintf("%d new feature(s)", n))
	}
	if n := len(c.Fixes); n > 0 {
		counts = append(counts, fmt.Sprintf("%d fix(es)", n))
	}
	if n := len(c.Improvements); n > 0 {
		counts = append(counts, fmt.Sprintf("%d improvement(s)", n))
	}
	if len(counts) > 0 {
		b.WriteString(strings.Join(counts, ", "))
	} else {
		b.WriteString("various changes")
	}
	b.WriteString(".\n\n")

	b.WriteString("## 🔄 Changes\n\n")
	writeDetailedSection(&b, "### ✨ New Features", c.Features, in.includeFiles)
	writeDetailedSection(&b, "### 🐛 Bug Fixes", c.Fixes, in.includeFiles)
	writeDetailedSection(&b, "### 🚀 Improvements", c.Improvements, in.includeFiles)

	if len(c.Other) > 0 {
		b.WriteString("### 📝 Other Changes\n")
		for _, commit := range c.Other {
			fmt.Fprintf(&b, "- %s (`%s`)\n", commit.Subject(), commit.ShortHash())
		}
		b.WriteString("\n")
	}

	if in.includeFiles && in.files.Len() > 0 {
		b.WriteString("## 📁 Changed Files\n\n")
		fmt.Fprintf(&b, "Total of **%d file(s)** changed:\n\n", in.files.Len())
		for _, path := range in.files.Sorted() {
			fmt.Fprintf(&b, "- `%s`\n", path)
		}
		b.WriteString("\n")
	}

	b.WriteString("## 🧪 How to Test\n\n")
	for _, item := range testChecklist {
		fmt.Fprintf(&b, "- [ ] %s\n", item)
	}
	return b.String()
}

func writeDetailedSection(b *strings.Builder, heading string, commits []analysis.CommitRecord, includeFiles bool) {
	if len(commits) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, commit := range commits {
		fmt.Fprintf(b, "- **%s**\n", commit.Subject())
		fmt.Fprintf(b, "  - Commit: `%s`\n", commit.ShortHash())
		if includeFiles && len(commit.Files) > 0 {
			fmt.Fprintf(b, "  - Files: %s\n", backticked(filePaths(commit.Files)))
		}
		b.WriteString("\n")
	}
}
