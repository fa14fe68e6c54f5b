package routes

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAll_WritesArtifactsAndRouteTable(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	artifacts := []Artifact{
		{LogicalPath: "post:/blog/a", Key: HashKey("post:/blog/a"), Data: []byte(`{"id":"a"}`)},
		{LogicalPath: "archive:/blog", Key: HashKey("archive:/blog"), Data: []byte(`{"page":1}`)},
	}
	routeList := []Route{
		{Path: "/blog/a", Component: ComponentPost, DataRefs: []string{artifacts[0].Key}},
		{Path: "/blog", Component: ComponentList, DataRefs: []string{artifacts[1].Key}},
	}

	res, err := w.WriteAll(context.Background(), routeList, artifacts)
	require.NoError(t, err)
	require.Equal(t, 2, res.Written)
	require.Equal(t, 0, res.Skipped)

	for _, art := range artifacts {
		data, err := os.ReadFile(filepath.Join(dir, art.Key+".json"))
		require.NoError(t, err)
		require.Equal(t, art.Data, data)
	}

	table, err := os.ReadFile(filepath.Join(dir, RouteTableName))
	require.NoError(t, err)
	var decoded []Route
	require.NoError(t, json.Unmarshal(table, &decoded))
	require.Len(t, decoded, 2)
	// Table is sorted by path regardless of emission order.
	require.Equal(t, "/blog", decoded[0].Path)
	require.Equal(t, "/blog/a", decoded[1].Path)
}

func TestWriteAll_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	_, err := w.WriteAll(context.Background(), nil, []Artifact{
		{LogicalPath: "post:/blog/a", Key: "abc123", Data: []byte(`{}`)},
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestWriteAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWriter(t.TempDir(), nil)
	_, err := w.WriteAll(ctx, nil, []Artifact{{LogicalPath: "x", Key: "k", Data: []byte(`{}`)}})
	require.Error(t, err)
}

func TestWriteAll_EmptyBuildStillWritesEmptyTable(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	res, err := w.WriteAll(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Zero(t, res.Written)

	table, err := os.ReadFile(filepath.Join(dir, RouteTableName))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(table))
}
