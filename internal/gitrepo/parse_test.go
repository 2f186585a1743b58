package gitrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	out := "aaa1111\x1fAda\x1f2024-03-01T10:00:00+01:00\x1ffeat: add thing\n\nlonger body\nsecond line\n\x1e\n" +
		"bbb2222\x1fGrace\x1f2024-02-28T09:30:00Z\x1ffix: bug\n\x1e\n"

	commits, err := parseLog(out)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "aaa1111", commits[0].Hash)
	assert.Equal(t, "Ada", commits[0].Author)
	assert.Equal(t, "feat: add thing\n\nlonger body\nsecond line", commits[0].Message)
	assert.True(t, commits[0].Date.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, "fix: bug", commits[1].Message)
}

func TestParseLogEmpty(t *testing.T) {
	commits, err := parseLog("")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestParseLogMalformed(t *testing.T) {
	_, err := parseLog("deadbeef\x1fonly two\x1e")
	require.Error(t, err)
}

func TestParseNumstat(t *testing.T) {
	out := "3\t1\tinternal/app/main.go\n-\t-\tassets/logo.png\n0\t7\tREADME.md\n"

	stats, err := parseNumstat(out)
	require.NoError(t, err)
	assert.Equal(t, []FileStat{
		{Path: "internal/app/main.go", Insertions: 3, Deletions: 1},
		{Path: "assets/logo.png"},
		{Path: "README.md", Deletions: 7},
	}, stats)
}

func TestParseNumstatRejectsGarbage(t *testing.T) {
	_, err := parseNumstat("x\ty\tfile.go\n")
	require.Error(t, err)
}
