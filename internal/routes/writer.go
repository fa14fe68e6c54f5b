package routes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	berrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// RouteTableName is the fixed filename of the route table inside the data dir.
const RouteTableName = "routes.json"

// ArtifactCache lets the Writer skip artifacts whose content has not changed
// since the previous build. Implemented by the incremental package.
type ArtifactCache interface {
	Lookup(ctx context.Context, logicalPath string) (contentHash string, ok bool, err error)
	Store(ctx context.Context, logicalPath, contentHash string) error
	PruneExcept(ctx context.Context, keep map[string]bool) error
}

// Writer persists artifacts and the route table into the generated-data
// area. This is the only output I/O boundary the core owns.
type Writer struct {
	dir   string
	cache ArtifactCache // nil disables incremental skipping
}

// NewWriter creates a Writer rooted at dir. cache may be nil.
func NewWriter(dir string, cache ArtifactCache) *Writer {
	return &Writer{dir: dir, cache: cache}
}

// WriteResult summarizes a WriteAll run.
type WriteResult struct {
	Written int
	Skipped int
}

// WriteAll writes every artifact plus the route table, staging each file and
// renaming into place so readers never observe partial writes. With a cache,
// artifacts whose content hash matches the previous build are skipped and
// stale cache rows are pruned.
func (w *Writer) WriteAll(ctx context.Context, routeList []Route, artifacts []Artifact) (WriteResult, error) {
	var res WriteResult
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return res, berrors.WriteFailed(w.dir, err)
	}

	keep := make(map[string]bool, len(artifacts))
	for _, art := range artifacts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		keep[art.LogicalPath] = true

		sum := sha256.Sum256(art.Data)
		contentHash := hex.EncodeToString(sum[:])

		if w.cache != nil {
			prev, ok, err := w.cache.Lookup(ctx, art.LogicalPath)
			if err != nil {
				return res, err
			}
			if ok && prev == contentHash && w.exists(art.Key) {
				res.Skipped++
				continue
			}
		}

		if err := w.stage(art.Key+".json", art.Data); err != nil {
			return res, err
		}
		if w.cache != nil {
			if err := w.cache.Store(ctx, art.LogicalPath, contentHash); err != nil {
				return res, err
			}
		}
		res.Written++
	}

	table, err := marshalRouteTable(routeList)
	if err != nil {
		return res, err
	}
	if err := w.stage(RouteTableName, table); err != nil {
		return res, err
	}

	if w.cache != nil {
		if err := w.cache.PruneExcept(ctx, keep); err != nil {
			return res, err
		}
	}

	slog.Debug("Artifact write complete",
		logfields.Output(w.dir),
		logfields.Artifacts(res.Written),
		slog.Int("skipped", res.Skipped))
	return res, nil
}

func (w *Writer) exists(key string) bool {
	_, err := os.Stat(filepath.Join(w.dir, key+".json"))
	return err == nil
}

// stage writes to a temp file in the target directory and renames into place.
func (w *Writer) stage(name string, data []byte) error {
	target := filepath.Join(w.dir, name)
	tmp, err := os.CreateTemp(w.dir, "."+name+".tmp-*")
	if err != nil {
		return berrors.WriteFailed(target, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return berrors.WriteFailed(target, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return berrors.WriteFailed(target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return berrors.WriteFailed(target, err)
	}
	return nil
}

// marshalRouteTable serializes routes sorted by path so repeated builds
// produce byte-identical tables.
func marshalRouteTable(routeList []Route) ([]byte, error) {
	sorted := make([]Route, len(routeList))
	copy(sorted, routeList)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, berrors.InternalError("marshal route table", err)
	}
	return data, nil
}
