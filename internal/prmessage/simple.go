package prmessage

import (
	"fmt"
	"strings"
)

const (
	simpleMaxCommits     = 8
	simpleMaxInlineFiles = 10
)

func renderSimple(in input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", in.commits[0].Subject())

	if len(in.commits) > 1 {
		b.WriteString("## Changes\n\n")
		for i, commit := range in.commits {
			if i == simpleMaxCommits {
				break
			}
			fmt.Fprintf(&b, "- %s\n", commit.Subject())
		}
		if extra := len(in.commits) - simpleMaxCommits; extra > 0 {
			fmt.Fprintf(&b, "- ... and %d more commit(s)\n", extra)
		}
		b.WriteString("\n")
	}

	if in.includeFiles && in.files.Len() > 0 {
		fmt.Fprintf(&b, "**%d file(s) changed**", in.files.Len())
		if in.files.Len() <= simpleMaxInlineFiles {
			fmt.Fprintf(&b, ": %s", backticked(in.files.Paths()))
		}
	}
	return b.String()
}
