package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stage(t *testing.T, dir, content string) string {
	t.Helper()
	f, err := os.CreateTemp(dir, ".staged.*.tmp")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func names(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestCommitRestoresReplacedArtifacts(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.xml")
	metaPath := filepath.Join(dir, "meta.json")
	require.NoError(t, os.WriteFile(configPath, []byte("old config"), 0o644))
	require.NoError(t, os.WriteFile(metaPath, []byte("old meta"), 0o644))

	files := []artifact{{path: configPath}, {path: metaPath}}
	staged := []string{stage(t, dir, "new config"), filepath.Join(dir, "vanished.tmp")}

	err := commit(files, staged)
	require.Error(t, err)

	got, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "old config", string(got))
	got, err = os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Equal(t, "old meta", string(got))

	assert.Empty(t, staged[0])
	assert.ElementsMatch(t, []string{"config.xml", "meta.json"}, names(t, dir))
}

func TestCommitRemovesNewArtifactsOnFailure(t *testing.T) {
	dir := t.TempDir()
	files := []artifact{{path: filepath.Join(dir, "config.xml")}, {path: filepath.Join(dir, "meta.json")}}
	staged := []string{stage(t, dir, "new config"), filepath.Join(dir, "vanished.tmp")}

	require.Error(t, commit(files, staged))
	assert.Empty(t, names(t, dir))
}

func TestWriteAllReplacesExistingArtifacts(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.xml")
	metaPath := filepath.Join(dir, "nested", "meta.json")
	require.NoError(t, os.WriteFile(configPath, []byte("old config"), 0o644))

	require.NoError(t, writeAll([]artifact{
		{path: configPath, data: []byte("new config")},
		{path: metaPath, data: []byte("new meta")},
	}))

	got, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "new config", string(got))
	got, err = os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Equal(t, "new meta", string(got))
	assert.ElementsMatch(t, []string{"config.xml", "nested"}, names(t, dir))
}

func TestWriteAllRejectsDirectoryDestination(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "meta.json"), 0o755))

	err := writeAll([]artifact{
		{path: filepath.Join(dir, "config.xml"), data: []byte("new config")},
		{path: filepath.Join(dir, "meta.json"), data: []byte("new meta")},
	})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"meta.json"}, names(t, dir))
}
