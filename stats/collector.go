package stats

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yoanbernabeu/locmon/tokenizer"
)

// Collector walks a directory tree and measures every matching source file.
type Collector struct {
	root    string
	ext     string
	matcher *ignore.GitIgnore
}

// NewCollector builds a Collector rooted at root for files with the given
// extension. When respectGitignore is true and root holds a .gitignore,
// matching entries are skipped. The .git directory is always skipped.
func NewCollector(root, ext string, respectGitignore bool) *Collector {
	c := &Collector{root: root, ext: ext}
	if respectGitignore {
		if m, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			c.matcher = m
		}
	}
	return c
}

// Collect produces one FileStat per source file that yields at least one
// retained token. Files are visited sequentially; the first file that cannot
// be read or tokenized aborts the whole collection, because a partial
// snapshot would make the report lie.
func (c *Collector) Collect(ctx context.Context) ([]FileStat, error) {
	var out []FileStat
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(c.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if rel != "." && c.matcher != nil && c.matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), c.ext) {
			return nil
		}
		if c.matcher != nil && c.matcher.MatchesPath(rel) {
			return nil
		}

		stat, ok, statErr := c.statFile(ctx, path, rel)
		if statErr != nil {
			return statErr
		}
		if ok {
			out = append(out, stat)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stats: scan %s: %w", c.root, err)
	}
	return out, nil
}

// statFile measures one file. ok is false when no retained token covers any
// line, in which case the file is left out of the snapshot entirely.
func (c *Collector) statFile(ctx context.Context, path, rel string) (FileStat, bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileStat{}, false, err
	}

	tokens, err := tokenizer.Tokenize(ctx, src)
	if err != nil {
		return FileStat{}, false, fmt.Errorf("%s: %w", rel, err)
	}

	covered := make(map[int]struct{})
	for _, tok := range tokens {
		for ln := tok.StartLine; ln <= tok.EndLine; ln++ {
			covered[ln] = struct{}{}
		}
	}
	if len(covered) == 0 {
		return FileStat{}, false, nil
	}

	return FileStat{
		Path:    rel,
		Lines:   len(covered),
		Tokens:  len(tokens),
		Density: float64(len(tokens)) / float64(len(covered)),
	}, true, nil
}
