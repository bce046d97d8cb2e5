package stats_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/yoanbernabeu/locmon/stats"
)

// ---- helpers ----

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func collect(t *testing.T, root string, respectGitignore bool) []stats.FileStat {
	t.Helper()
	rows, err := stats.NewCollector(root, ".py", respectGitignore).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rows
}

func findRow(rows []stats.FileStat, path string) (stats.FileStat, bool) {
	for _, r := range rows {
		if r.Path == path {
			return r, true
		}
	}
	return stats.FileStat{}, false
}

// ---- Collect ----

func TestCollect_BasicCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1\ny = 2\n")
	writeFile(t, dir, "pkg/sub/b.py", "z = 3\n")
	writeFile(t, dir, "notes.txt", "not python\n")

	rows := collect(t, dir, true)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	a, ok := findRow(rows, "a.py")
	if !ok {
		t.Fatal("a.py missing from snapshot")
	}
	if a.Lines != 2 || a.Tokens != 6 {
		t.Errorf("a.py = %+v, want 2 lines / 6 tokens", a)
	}
	if a.Density != 3.0 {
		t.Errorf("a.py density = %v, want 3.0", a.Density)
	}

	b, ok := findRow(rows, "pkg/sub/b.py")
	if !ok {
		t.Fatal("pkg/sub/b.py missing from snapshot (path should use forward slashes)")
	}
	if b.Lines != 1 || b.Tokens != 3 {
		t.Errorf("pkg/sub/b.py = %+v, want 1 line / 3 tokens", b)
	}
}

func TestCollect_DensityRecomputes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f(a, b):\n    return a + b\n")
	writeFile(t, dir, "b.py", "x = 1\n")

	for _, r := range collect(t, dir, true) {
		if r.Lines <= 0 {
			t.Errorf("%s: Lines = %d, want > 0", r.Path, r.Lines)
		}
		want := float64(r.Tokens) / float64(r.Lines)
		if math.Abs(r.Density-want) > 1e-12 {
			t.Errorf("%s: Density = %v, want %v", r.Path, r.Density, want)
		}
	}
}

func TestCollect_CommentOnlyFileExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.py", "# nothing to see\n\n# still nothing\n")
	writeFile(t, dir, "real.py", "x = 1\n")

	rows := collect(t, dir, true)
	if _, ok := findRow(rows, "empty.py"); ok {
		t.Error("comment-only file should be excluded from the snapshot")
	}
	if _, ok := findRow(rows, "real.py"); !ok {
		t.Error("real.py missing from snapshot")
	}
}

func TestCollect_DocstringOnlyFileExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs.py", "\"\"\"Only documentation here.\"\"\"\n")

	rows := collect(t, dir, true)
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0: %+v", len(rows), rows)
	}
}

func TestCollect_GitignoreRespected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated.py\nvendor/\n")
	writeFile(t, dir, "kept.py", "x = 1\n")
	writeFile(t, dir, "generated.py", "y = 2\n")
	writeFile(t, dir, "vendor/dep.py", "z = 3\n")

	rows := collect(t, dir, true)
	if _, ok := findRow(rows, "generated.py"); ok {
		t.Error("gitignored file should be skipped")
	}
	if _, ok := findRow(rows, "vendor/dep.py"); ok {
		t.Error("file in gitignored directory should be skipped")
	}
	if _, ok := findRow(rows, "kept.py"); !ok {
		t.Error("kept.py missing from snapshot")
	}

	all := collect(t, dir, false)
	if _, ok := findRow(all, "generated.py"); !ok {
		t.Error("gitignore should be ignored when disabled")
	}
}

func TestCollect_BadFileAbortsScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.py", "x = 1\n")
	writeFile(t, dir, "broken.py", ")\n")

	_, err := stats.NewCollector(dir, ".py", true).Collect(context.Background())
	if err == nil {
		t.Fatal("expected scan to fail on the broken file, got nil error")
	}
}

// ---- Collect + Diff integration ----

func TestCollectThenDiff(t *testing.T) {
	v1 := t.TempDir()
	v2 := t.TempDir()
	writeFile(t, v1, "a.py", "x = 1\n")
	writeFile(t, v1, "b.py", "y = 2\n")
	writeFile(t, v2, "a.py", "x = 1\nz = 3\n")

	oldRows := collect(t, v1, true)
	newRows := collect(t, v2, true)
	diff := stats.Diff(oldRows, newRows)

	if len(diff) != 2 {
		t.Fatalf("got %d diff rows, want 2: %+v", len(diff), diff)
	}
	// Lexicographic build order: a.py then b.py.
	if diff[0].Path != "a.py" || diff[0].LineDelta != 1 {
		t.Errorf("diff[0] = %+v, want a.py with LineDelta +1", diff[0])
	}
	if diff[1].Path != "b.py" || diff[1].LineDelta != -1 || diff[1].Lines != 0 {
		t.Errorf("diff[1] = %+v, want b.py dropping to zero", diff[1])
	}
	if got := stats.TotalDelta(diff); got != 0 {
		t.Errorf("TotalDelta = %d, want 0", got)
	}
}
