package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yoanbernabeu/locmon/stats"
)

// noChangesMessage is printed whenever a report would otherwise be empty.
const noChangesMessage = "#### No changes found in core library line counts."

// runSnapshotReport scans base once, renders the single-snapshot report and
// enforces the configured line budget.
func runSnapshotReport(ctx context.Context, w io.Writer, base string) error {
	cfg, err := loadConfig(base)
	if err != nil {
		return err
	}
	rows, err := collect(ctx, base, cfg)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, noChangesMessage)
		return nil
	}

	renderSnapshot(w, rows)

	total := stats.TotalLines(rows)
	if cfg.ThresholdEnabled() && total > cfg.MaxLineCount {
		return fmt.Errorf("total line count %d exceeds the configured maximum of %d", total, cfg.MaxLineCount)
	}
	return nil
}

// runDiffReport scans oldRoot then newRoot and renders what changed between
// them. Both scans use the configuration found at newRoot so the two sides
// are measured by the same rules. The line budget does not apply here.
func runDiffReport(ctx context.Context, w io.Writer, oldRoot, newRoot string) error {
	cfg, err := loadConfig(newRoot)
	if err != nil {
		return err
	}
	oldRows, err := collect(ctx, oldRoot, cfg)
	if err != nil {
		return err
	}
	newRows, err := collect(ctx, newRoot, cfg)
	if err != nil {
		return err
	}

	diff := stats.Diff(oldRows, newRows)
	if len(diff) == 0 {
		fmt.Fprintln(w, noChangesMessage)
		return nil
	}

	fmt.Fprintln(w, "### Changes:")
	fmt.Fprintln(w, "```")
	renderDiff(w, diff)
	fmt.Fprintf(w, "\ntotal lines changed: %s\n", signedInt(stats.TotalDelta(diff)))
	fmt.Fprintln(w, "```")
	return nil
}

// renderSnapshot prints the per-file table sorted by line count descending,
// the per-directory subtotals sorted by group key, and the grand total.
func renderSnapshot(w io.Writer, rows []stats.FileStat) {
	sorted := make([]stats.FileStat, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Lines > sorted[j].Lines })

	fileW := pathColumnWidth(sorted, func(r stats.FileStat) string { return r.Path })
	colFile := lipgloss.NewStyle().Width(fileW + 2)
	colLines := lipgloss.NewStyle().Width(7).Align(lipgloss.Right)
	colDensity := lipgloss.NewStyle().Width(13).Align(lipgloss.Right)

	fmt.Fprintln(w, colFile.Render("File")+colLines.Render("Lines")+colDensity.Render("Tokens/Line"))
	fmt.Fprintln(w, colFile.Render(rule(fileW))+colLines.Render(rule(5))+colDensity.Render(rule(11)))
	for _, r := range sorted {
		fmt.Fprintln(w, colFile.Render(r.Path)+
			colLines.Render(strconv.Itoa(r.Lines))+
			colDensity.Render(fmt.Sprintf("%.1f", r.Density)))
	}

	fmt.Fprintln(w)
	for _, g := range stats.GroupTotals(rows) {
		fmt.Fprintf(w, "%-30s : %6d\n", g.Key, g.Lines)
	}
	fmt.Fprintf(w, "\ntotal line count: %d\n", stats.TotalLines(rows))
}

// renderDiff prints the diff table sorted by new line count descending.
// Integer and density deltas carry a leading '+' when positive.
func renderDiff(w io.Writer, rows []stats.DiffRow) {
	sorted := make([]stats.DiffRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Lines > sorted[j].Lines })

	fileW := pathColumnWidth(sorted, func(r stats.DiffRow) string { return r.Path })
	colFile := lipgloss.NewStyle().Width(fileW + 2)
	colLines := lipgloss.NewStyle().Width(7).Align(lipgloss.Right)
	colDelta := lipgloss.NewStyle().Width(7).Align(lipgloss.Right)
	colDensity := lipgloss.NewStyle().Width(13).Align(lipgloss.Right)
	colDensityDelta := lipgloss.NewStyle().Width(20).Align(lipgloss.Right)

	fmt.Fprintln(w, colFile.Render("File")+
		colLines.Render("Lines")+
		colDelta.Render("Diff")+
		colDensity.Render("Tokens/Line")+
		colDensityDelta.Render("Token Density Diff"))
	fmt.Fprintln(w, colFile.Render(rule(fileW))+
		colLines.Render(rule(5))+
		colDelta.Render(rule(4))+
		colDensity.Render(rule(11))+
		colDensityDelta.Render(rule(18)))
	for _, r := range sorted {
		fmt.Fprintln(w, colFile.Render(r.Path)+
			colLines.Render(strconv.Itoa(r.Lines))+
			colDelta.Render(signedInt(r.LineDelta))+
			colDensity.Render(fmt.Sprintf("%.1f", r.Density))+
			colDensityDelta.Render(signedFloat(r.DensityDelta)))
	}
}

// pathColumnWidth sizes the File column to its widest entry.
func pathColumnWidth[T any](rows []T, path func(T) string) int {
	w := len("File")
	for _, r := range rows {
		if l := len(path(r)); l > w {
			w = l
		}
	}
	return w
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func signedInt(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return strconv.Itoa(n)
}

func signedFloat(f float64) string {
	if f > 0 {
		return fmt.Sprintf("+%.1f", f)
	}
	return fmt.Sprintf("%.1f", f)
}
