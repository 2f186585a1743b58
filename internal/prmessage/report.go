package prmessage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/pr-messages/internal/analysis"
)

type ReportFormat string

const (
	FormatText ReportFormat = "text"
	FormatJSON ReportFormat = "json"
	FormatYAML ReportFormat = "yaml"
)

const reportDateLayout = "2006-01-02 15:04:05 MST"

// RenderReport formats an analysis as a walkthrough of each commit.
func RenderReport(result analysis.Result, format ReportFormat) (string, error) {
	return renderReportAt(result, format, time.Now())
}

func renderReportAt(result analysis.Result, format ReportFormat, now time.Time) (string, error) {
	switch format {
	case "", FormatText:
		return reportText(result, now), nil
	case FormatJSON:
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode report: %w", err)
		}
		return string(out), nil
	case FormatYAML:
		out, err := yaml.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("encode report: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

func reportText(result analysis.Result, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 🔍 Branch Analysis: `%s`\n\n", result.Branch.CurrentBranch)
	fmt.Fprintf(&b, "**Base:** `%s`\n", result.Branch.BaseRef)
	fmt.Fprintf(&b, "**Total commits:** %d\n\n", result.TotalCommits)

	if len(result.Commits) == 0 {
		b.WriteString("No commits found on this branch.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "## 📝 Analyzed Commits (%d):\n\n", len(result.Commits))
	for i, c := range result.Commits {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, c.Subject())
		fmt.Fprintf(&b, "- **Hash:** `%s`\n", c.ShortHash())
		fmt.Fprintf(&b, "- **Author:** %s\n", c.Author)
		fmt.Fprintf(&b, "- **Date:** %s (%s)\n", c.Date.Local().Format(reportDateLayout), humanize.RelTime(c.Date, now, "ago", "from now"))
		if len(c.Files) > 0 {
			fmt.Fprintf(&b, "- **Changed files (%d):**\n", len(c.Files))
			for _, f := range c.Files {
				fmt.Fprintf(&b, "  - `%s` (+%d/-%d)\n", f.Path, f.Insertions, f.Deletions)
			}
		} else {
			b.WriteString("- **Files:** no files detected\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
