package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridkit/internal/config/loader"
	"github.com/dshills/gridkit/internal/config/notify"
)

func noEnv() *loader.EnvLoader {
	return loader.NewEnvLoaderFunc(loader.DefaultEnvPrefix, func() []string { return nil })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTOMLWithColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	writeFile(t, path, `
scrollingEnabled = false
hoverEnabled = true

[columns.2]
scrollingEnabled = true
`)

	c := New(WithPath(path), WithEnvLoader(noEnv()))
	require.NoError(t, c.Load(context.Background()))
	defer c.Close()

	snap := c.Snapshot()
	assert.Equal(t, false, snap.Properties["scrollingEnabled"])
	assert.Equal(t, true, snap.Properties["hoverEnabled"])
	assert.NotContains(t, snap.Properties, ColumnsKey)
	assert.Equal(t, map[int]map[string]any{2: {"scrollingEnabled": true}}, snap.Columns)
}

func TestLoadYAMLAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	writeFile(t, path, "keyPagingEnabled: true\nhoverEnabled: true\n")

	env := loader.NewEnvLoaderFunc(loader.DefaultEnvPrefix, func() []string {
		return []string{"GRIDKIT_HOVER_ENABLED=false", "HOME=/root"}
	})
	c := New(WithPath(path), WithEnvLoader(env))
	require.NoError(t, c.Load(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, true, snap.Properties["keyPagingEnabled"])
	assert.Equal(t, false, snap.Properties["hoverEnabled"])
	assert.Nil(t, snap.Columns)
}

func TestLoadMissingFile(t *testing.T) {
	c := New(WithPath(filepath.Join(t.TempDir(), "absent.toml")), WithEnvLoader(noEnv()))
	require.NoError(t, c.Load(context.Background()))
	assert.Empty(t, c.Snapshot().Properties)
}

func TestLoadRejectsBadColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	writeFile(t, path, "[columns.first]\nscrollingEnabled = true\n")

	err := New(WithPath(path), WithEnvLoader(noEnv())).Load(context.Background())
	var colErr *ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "first", colErr.Key)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestReloadNotifiesAndKeepsOldOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	writeFile(t, path, "scrollingEnabled = true\n")

	c := New(WithPath(path), WithEnvLoader(noEnv()))
	require.NoError(t, c.Load(context.Background()))

	var changes []notify.Change
	c.Subscribe(func(ch notify.Change) { changes = append(changes, ch) })
	var reloaded []Snapshot
	c.OnReload(func(s Snapshot) { reloaded = append(reloaded, s) })

	writeFile(t, path, "scrollingEnabled = false\n")
	require.NoError(t, c.Reload())
	require.Len(t, changes, 1)
	assert.Equal(t, "scrollingEnabled", changes[0].Key)
	assert.Equal(t, true, changes[0].OldValue)
	assert.Equal(t, false, changes[0].NewValue)
	require.Len(t, reloaded, 1)

	writeFile(t, path, "scrollingEnabled = = true\n")
	var parseErr *loader.ParseError
	require.ErrorAs(t, c.Reload(), &parseErr)
	assert.Equal(t, false, c.Snapshot().Properties["scrollingEnabled"])
	assert.Len(t, reloaded, 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	writeFile(t, path, "hoverEnabled = true\n[columns.0]\nhoverEnabled = false\n")
	c := New(WithPath(path), WithEnvLoader(noEnv()))
	require.NoError(t, c.Load(context.Background()))

	snap := c.Snapshot()
	snap.Properties["hoverEnabled"] = false
	snap.Columns[0]["hoverEnabled"] = true

	again := c.Snapshot()
	assert.Equal(t, true, again.Properties["hoverEnabled"])
	assert.Equal(t, false, again.Columns[0]["hoverEnabled"])
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	writeFile(t, path, "scrollingEnabled = true\n")

	c := New(WithPath(path), WithEnvLoader(noEnv()), WithWatcher(true))
	var mu sync.Mutex
	var got []Snapshot
	c.OnReload(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	})
	require.NoError(t, c.Load(context.Background()))
	defer c.Close()

	writeFile(t, path, "scrollingEnabled = false\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0 && got[len(got)-1].Properties["scrollingEnabled"] == false
	}, 5*time.Second, 20*time.Millisecond)
}

func TestClose(t *testing.T) {
	c := New(WithEnvLoader(noEnv()))
	c.Close()
	c.Close()
	assert.ErrorIs(t, c.Load(context.Background()), ErrClosed)
	assert.ErrorIs(t, c.Reload(), ErrClosed)
}
