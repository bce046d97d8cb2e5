package stats

import "sort"

// Diff aligns two snapshots by path and returns one row per changed file.
// A path present on only one side is compared against a zero stat, so an
// added file rises from zero and a deleted file drops to zero. Paths are
// visited in lexicographic order, making the result deterministic for
// identical inputs; display ordering is the reporter's concern.
func Diff(old, new []FileStat) []DiffRow {
	oldByPath := byPath(old)
	newByPath := byPath(new)

	paths := make([]string, 0, len(oldByPath)+len(newByPath))
	for p := range oldByPath {
		paths = append(paths, p)
	}
	for p := range newByPath {
		if _, seen := oldByPath[p]; !seen {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var rows []DiffRow
	for _, p := range paths {
		o := oldByPath[p] // zero value stands in for a missing side
		n := newByPath[p]
		lineDelta := n.Lines - o.Lines
		densityDelta := n.Density - o.Density
		if lineDelta == 0 && densityDelta == 0 {
			continue
		}
		rows = append(rows, DiffRow{
			Path:         p,
			Lines:        n.Lines,
			LineDelta:    lineDelta,
			Density:      n.Density,
			DensityDelta: densityDelta,
		})
	}
	return rows
}

func byPath(rows []FileStat) map[string]FileStat {
	m := make(map[string]FileStat, len(rows))
	for _, r := range rows {
		m[r.Path] = r
	}
	return m
}
