package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// SourceFile is one discovered content file, not yet read.
type SourceFile struct {
	AbsPath string
	RelPath string // slash-separated, relative to the content dir
	ModTime time.Time
}

// Discovery enumerates content files under the configured include/exclude
// globs in deterministic (lexical) order.
type Discovery struct {
	contentDir string
	include    []matcher
	exclude    []matcher
}

type matcher struct {
	pattern  string
	g        glob.Glob
	baseOnly bool // pattern has no slash; match the file name only
	stripped glob.Glob // pattern with a leading **/ removed, for root-level files
}

// NewDiscovery compiles the configured globs. Invalid patterns are a
// configuration error.
func NewDiscovery(cfg *config.Config) (*Discovery, error) {
	include, err := compilePatterns(cfg.Include, "include")
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(cfg.Exclude, "exclude")
	if err != nil {
		return nil, err
	}
	return &Discovery{contentDir: cfg.ContentDir, include: include, exclude: exclude}, nil
}

func compilePatterns(patterns []string, field string) ([]matcher, error) {
	out := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, berrors.ConfigInvalid(field, "invalid glob "+p)
		}
		m := matcher{pattern: p, g: g, baseOnly: !strings.Contains(p, "/")}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			// `**/x` should also match x at the content root.
			sg, err := glob.Compile(rest, '/')
			if err == nil {
				m.stripped = sg
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (m matcher) match(relPath string) bool {
	if m.baseOnly {
		return m.g.Match(filepath.Base(relPath))
	}
	if m.g.Match(relPath) {
		return true
	}
	return m.stripped != nil && m.stripped.Match(relPath)
}

// Discover walks the content directory and returns matching files sorted by
// relative path. A missing content directory is a fatal filesystem error;
// an existing but empty one yields an empty slice.
func (d *Discovery) Discover() ([]SourceFile, error) {
	if _, err := os.Stat(d.contentDir); err != nil {
		return nil, berrors.ReadFailed(d.contentDir, err)
	}

	var files []SourceFile
	err := filepath.WalkDir(d.contentDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return berrors.ReadFailed(path, err)
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.contentDir, path)
		if err != nil {
			return berrors.ReadFailed(path, err)
		}
		rel = filepath.ToSlash(rel)

		if !d.matches(rel) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return berrors.ReadFailed(path, err)
		}
		files = append(files, SourceFile{AbsPath: path, RelPath: rel, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	slog.Debug("Content discovery complete",
		logfields.Path(d.contentDir),
		logfields.Posts(len(files)))
	return files, nil
}

func (d *Discovery) matches(relPath string) bool {
	included := false
	for _, m := range d.include {
		if m.match(relPath) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, m := range d.exclude {
		if m.match(relPath) {
			return false
		}
	}
	return true
}
