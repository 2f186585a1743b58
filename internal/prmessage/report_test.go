package prmessage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/pr-messages/internal/analysis"
)

func sampleResult() analysis.Result {
	commits := sampleCommits()
	commits[0].Files[0].Insertions = 12
	commits[0].Files[0].Deletions = 3
	commits[0].Files[0].Changes = 15
	commits[1].Files = []analysis.FileChange{}
	return analysis.Result{
		Branch:       analysis.BranchContext{CurrentBranch: "feature/login", BaseRef: "main", Strategy: analysis.StrategyRequested},
		TotalCommits: 5,
		Source:       analysis.SourceRange,
		Commits:      commits,
	}
}

func TestReportText(t *testing.T) {
	now := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)
	got, err := renderReportAt(sampleResult(), FormatText, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "# 🔍 Branch Analysis: `feature/login`\n\n**Base:** `main`\n**Total commits:** 5\n\n"))
	assert.Contains(t, got, "## 📝 Analyzed Commits (2):\n\n")
	assert.Contains(t, got, "### 1. feat: add login form\n- **Hash:** `aaaaaaa`\n- **Author:** Ada\n")
	assert.Contains(t, got, "(3 hours ago)")
	assert.Contains(t, got, "- **Changed files (2):**\n  - `web/login.tsx` (+12/-3)\n  - `README.md` (+1/-0)\n")
	assert.Contains(t, got, "### 2. docs: typo\n")
	assert.Contains(t, got, "- **Files:** no files detected\n")
	assert.NotContains(t, got, "Wires the form")
}

func TestReportTextNoCommits(t *testing.T) {
	res := analysis.Result{
		Branch:  analysis.BranchContext{CurrentBranch: "feature", BaseRef: "main"},
		Commits: []analysis.CommitRecord{},
	}
	got, err := RenderReport(res, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "# 🔍 Branch Analysis: `feature`\n\n**Base:** `main`\n**Total commits:** 0\n\nNo commits found on this branch.\n", got)
}

func TestReportJSON(t *testing.T) {
	got, err := RenderReport(sampleResult(), FormatJSON)
	require.NoError(t, err)

	var decoded analysis.Result
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "feature/login", decoded.Branch.CurrentBranch)
	assert.Equal(t, 5, decoded.TotalCommits)
	require.Len(t, decoded.Commits, 2)
	assert.Equal(t, 15, decoded.Commits[0].Files[0].Changes)
	assert.Contains(t, got, `"files": []`)
}

func TestReportYAML(t *testing.T) {
	got, err := RenderReport(sampleResult(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, got, "current_branch: feature/login")
	assert.Contains(t, got, "total_commits: 5")
	assert.Contains(t, got, "source: range")
}

func TestReportUnknownFormat(t *testing.T) {
	_, err := RenderReport(sampleResult(), ReportFormat("xml"))
	require.Error(t, err)
}
