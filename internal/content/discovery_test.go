package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

func testConfig(t *testing.T, contentDir string) *config.Config {
	t.Helper()
	cfg := &config.Config{ContentDir: contentDir}
	cfg.ApplyDefaults()
	cfg.Normalize()
	require.NoError(t, cfg.Validate())
	return cfg
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestDiscover_MatchesIncludesAndSkipsExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-01-01-root.md", "root")
	writeFile(t, dir, "sub/2024-01-02-deep.mdx", "deep")
	writeFile(t, dir, "_partial.md", "partial")
	writeFile(t, dir, "sub/.hidden.md", "hidden")
	writeFile(t, dir, "notes.txt", "not content")

	d, err := NewDiscovery(testConfig(t, dir))
	require.NoError(t, err)

	files, err := d.Discover()
	require.NoError(t, err)

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	require.Equal(t, []string{"2024-01-01-root.md", "sub/2024-01-02-deep.mdx"}, rels)
}

func TestDiscover_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "b")
	writeFile(t, dir, "a.md", "a")
	writeFile(t, dir, "c/inner.md", "c")

	d, err := NewDiscovery(testConfig(t, dir))
	require.NoError(t, err)

	first, err := d.Discover()
	require.NoError(t, err)
	second, err := d.Discover()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "a.md", first[0].RelPath)
}

func TestDiscover_EmptyDirIsNotAnError(t *testing.T) {
	d, err := NewDiscovery(testConfig(t, t.TempDir()))
	require.NoError(t, err)

	files, err := d.Discover()
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestDiscover_MissingDirIsFatal(t *testing.T) {
	d, err := NewDiscovery(testConfig(t, filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)

	_, err = d.Discover()
	require.Error(t, err)
}

func TestNewDiscovery_InvalidGlob(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Include = []string{"[unclosed"}
	_, err := NewDiscovery(cfg)
	require.Error(t, err)
}
