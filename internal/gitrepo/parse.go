package gitrepo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func parseLog(out string) ([]Commit, error) {
	records := strings.Split(out, "\x1e")
	commits := make([]Commit, 0, len(records))
	for _, record := range records {
		record = strings.TrimLeft(record, "\r\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.SplitN(record, "\x1f", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log record %q", preview(record))
		}
		date, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("parse commit date %q: %w", fields[2], err)
		}
		commits = append(commits, Commit{
			Hash:    strings.TrimSpace(fields[0]),
			Author:  strings.TrimSpace(fields[1]),
			Date:    date,
			Message: strings.TrimRight(fields[3], "\r\n "),
		})
	}
	return commits, nil
}

func parseNumstat(out string) ([]FileStat, error) {
	var stats []FileStat
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed numstat line %q", preview(line))
		}
		insertions, err := numstatCount(parts[0])
		if err != nil {
			return nil, err
		}
		deletions, err := numstatCount(parts[1])
		if err != nil {
			return nil, err
		}
		stats = append(stats, FileStat{Path: parts[2], Insertions: insertions, Deletions: deletions})
	}
	return stats, nil
}

// numstatCount parses a numstat column; "-" marks a binary file.
func numstatCount(field string) (int, error) {
	if field == "-" {
		return 0, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("parse numstat count %q: %w", field, err)
	}
	return n, nil
}

func preview(s string) string {
	if len(s) > 80 {
		return s[:80]
	}
	return s
}
