package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of filesystem events (editors often write
// a file several times in a row) into a single report.
const watchDebounce = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-run the size report whenever source files change",
	Long: `Watch a directory tree and re-run the single-snapshot size report
every time a matching source file is created, written, removed or renamed.

A line budget violation is printed but does not stop the watcher.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	base := "."
	if len(args) == 1 {
		base = args[0]
	}

	cfg, err := loadConfig(base)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, base); err != nil {
		return err
	}

	report := func() {
		if err := runSnapshotReport(cmd.Context(), os.Stdout, base); err != nil {
			fmt.Fprintf(os.Stderr, "locmon: %v\n", err)
		}
	}
	report()

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = watcher.Add(ev.Name)
					continue
				}
			}
			if strings.HasSuffix(ev.Name, cfg.Extension) {
				debounce.Reset(watchDebounce)
			}
		case <-debounce.C:
			report()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "locmon: watch: %v\n", err)
		}
	}
}

// addWatchDirs registers base and every subdirectory except .git.
func addWatchDirs(watcher *fsnotify.Watcher, base string) error {
	return filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
