package prmessage

import (
	"fmt"
	"strings"

	"github.com/roivaz/pr-messages/internal/analysis"
)

// NoCommitsMessage is returned for every style when the branch has no commits.
const NoCommitsMessage = "No commits found on the current branch."

type Style string

const (
	StyleDetailed     Style = "detailed"
	StyleSimple       Style = "simple"
	StyleConventional Style = "conventional"
)

var Styles = []Style{StyleDetailed, StyleSimple, StyleConventional}

func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Styles {
		if style == known {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (want detailed, simple or conventional)", s)
}

// input is what every style renders from.
type input struct {
	commits      []analysis.CommitRecord
	classified   Classified
	files        FileSet
	includeFiles bool
}

var renderers = map[Style]func(input) string{
	StyleDetailed:     renderDetailed,
	StyleSimple:       renderSimple,
	StyleConventional: renderConventional,
}

// Render formats commits (newest first) as a PR message in the given style.
func Render(style Style, commits []analysis.CommitRecord, includeFiles bool) (string, error) {
	render, ok := renderers[style]
	if !ok {
		return "", fmt.Errorf("unknown style %q", style)
	}
	if len(commits) == 0 {
		return NoCommitsMessage, nil
	}
	return render(input{
		commits:      commits,
		classified:   Classify(commits),
		files:        CollectFiles(commits),
		includeFiles: includeFiles,
	}), nil
}

func backticked(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = "`" + p + "`"
	}
	return strings.Join(quoted, ", ")
}

func filePaths(files []analysis.FileChange) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
