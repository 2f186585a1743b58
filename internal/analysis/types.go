package analysis

import (
	"strings"
	"time"
)

// Strategies reported in BranchContext.Strategy.
const (
	StrategyRequested    = "requested"
	StrategyMaster       = "master"
	StrategyOldestCommit = "oldest-commit"
	StrategyUnresolved   = "unresolved"
)

// Sources reported in Result.Source.
const (
	SourceRange  = "range"
	SourceRecent = "recent"
	SourceNone   = "none"
)

const (
	DefaultBaseBranch     = "main"
	DefaultAnalyzeLimit   = 10
	DefaultPRLimit        = 20
	DefaultOldestLookback = 100
)

// BranchContext is the pair of refs an analysis runs against.
type BranchContext struct {
	CurrentBranch string `json:"current_branch"`
	BaseRef       string `json:"base_ref"`
	Strategy      string `json:"strategy"`
}

type FileChange struct {
	Path       string `json:"path"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Changes    int    `json:"changes"`
}

type CommitRecord struct {
	Hash    string       `json:"hash"`
	Message string       `json:"message"`
	Author  string       `json:"author"`
	Date    time.Time    `json:"date"`
	Files   []FileChange `json:"files"`
}

// Subject returns the first line of the commit message.
func (c CommitRecord) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ShortHash returns the first seven characters of the hash.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) <= 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Result is the outcome of a branch analysis. Commits are newest first and
// TotalCommits counts every commit the winning query matched, not only the
// ones returned.
type Result struct {
	Branch       BranchContext  `json:"branch"`
	TotalCommits int            `json:"total_commits"`
	Source       string         `json:"source"`
	Commits      []CommitRecord `json:"commits"`
}
