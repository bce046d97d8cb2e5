package stats

import (
	"sort"
	"strings"
)

// FileStat holds the size measurements for a single source file within one
// snapshot. Values are fixed at collection time.
type FileStat struct {
	Path    string  // relative to the scan root, forward slashes on every platform
	Lines   int     // distinct source lines covered by retained tokens
	Tokens  int     // retained token count
	Density float64 // Tokens / Lines
}

// DiffRow describes how a single file changed between two snapshots. Rows
// exist only for files where at least one delta is non-zero.
type DiffRow struct {
	Path         string
	Lines        int // line count in the new snapshot
	LineDelta    int
	Density      float64 // density in the new snapshot
	DensityDelta float64
}

// GroupTotal is a per-directory line subtotal.
type GroupTotal struct {
	Key   string
	Lines int
}

// TotalLines sums the line counts of a snapshot.
func TotalLines(rows []FileStat) int {
	total := 0
	for _, r := range rows {
		total += r.Lines
	}
	return total
}

// TotalDelta sums the per-file line deltas of a diff. Files omitted from the
// diff have zero delta, so this equals new total minus old total.
func TotalDelta(rows []DiffRow) int {
	total := 0
	for _, r := range rows {
		total += r.LineDelta
	}
	return total
}

// GroupKey truncates a relative path to its first two slash-separated
// segments. Shorter paths group under themselves, so top-level files form
// their own groups.
func GroupKey(path string) string {
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 3 {
		return path
	}
	return parts[0] + "/" + parts[1]
}

// GroupTotals rolls a snapshot up to directory groups, sorted by group key.
func GroupTotals(rows []FileStat) []GroupTotal {
	totals := make(map[string]int)
	for _, r := range rows {
		totals[GroupKey(r.Path)] += r.Lines
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]GroupTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, GroupTotal{Key: k, Lines: totals[k]})
	}
	return out
}
