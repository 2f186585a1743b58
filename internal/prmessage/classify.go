package prmessage

import (
	"strings"

	"github.com/roivaz/pr-messages/internal/analysis"
)

type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryFix         Category = "fix"
	CategoryImprovement Category = "improvement"
)

// categoryKeywords are matched as case-insensitive substrings of the subject.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryFeature, []string{"feat", "add", "implement"}},
	{CategoryFix, []string{"fix", "bug", "resolve"}},
	{CategoryImprovement, []string{"refactor", "improve", "update", "enhance"}},
}

// Categories returns every category the subject belongs to. A subject may
// belong to several.
func Categories(subject string) []Category {
	subject = strings.ToLower(subject)
	var out []Category
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(subject, kw) {
				out = append(out, c.category)
				break
			}
		}
	}
	return out
}

// Classified groups commits by category. Membership is independent per
// category; Other holds the commits that matched none. Each slice keeps the
// input order and holds a commit at most once.
type Classified struct {
	Features     []analysis.CommitRecord
	Fixes        []analysis.CommitRecord
	Improvements []analysis.CommitRecord
	Other        []analysis.CommitRecord
}

func Classify(commits []analysis.CommitRecord) Classified {
	var out Classified
	seen := map[string]struct{}{}
	for _, c := range commits {
		if c.Hash != "" {
			if _, dup := seen[c.Hash]; dup {
				continue
			}
			seen[c.Hash] = struct{}{}
		}
		categories := Categories(c.Subject())
		if len(categories) == 0 {
			out.Other = append(out.Other, c)
			continue
		}
		for _, cat := range categories {
			switch cat {
			case CategoryFeature:
				out.Features = append(out.Features, c)
			case CategoryFix:
				out.Fixes = append(out.Fixes, c)
			case CategoryImprovement:
				out.Improvements = append(out.Improvements, c)
			}
		}
	}
	return out
}
