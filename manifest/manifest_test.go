package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadPlugin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "with_age", "plugin.yaml")
	writeFile(t, path, `
name: with_age
dependencies:
  - with_users
  - with_dob
extends:
  - User
`)

	p, err := LoadPlugin(path)
	require.NoError(t, err)
	assert.Equal(t, "with_age", p.Name())
	assert.Equal(t, []string{"with_users", "with_dob"}, p.Dependencies())
	assert.True(t, p.ExtendsClass("User"))
}

func TestLoadPlugin_NameFallsBackToFolder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "010_with_users", "plugin.yaml")
	writeFile(t, path, "provides:\n  - User\n")

	p, err := LoadPlugin(path)
	require.NoError(t, err)
	assert.Equal(t, "with_users", p.Name(), "numeric folder prefix should be stripped")
	assert.True(t, p.ProvidesClass("User"))
}

func TestLoadPlugin_MutualExclusivityRejectedAtLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "with_roles", "plugin.yaml")
	writeFile(t, path, `
name: with_roles
provides:
  - Role
extends:
  - Role
`)

	_, err := LoadPlugin(path)
	assert.Error(t, err, "plugin providing and extending Role must be rejected at load time")
}

func TestLoadApplication(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "application.yaml")
	writeFile(t, path, `
name: crm
plugins:
  - with_users
  - with_dob
  - with_age
`)

	app, err := LoadApplication(path)
	require.NoError(t, err)
	assert.Equal(t, "crm", app.Name())
	assert.Equal(t, []string{"with_users", "with_dob", "with_age"}, app.Plugins())
}

func TestLoadApplication_MissingPlugins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "application.yaml")
	writeFile(t, path, "name: crm\n")

	_, err := LoadApplication(path)
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "010_with_users", "plugin.yaml"), "provides:\n  - User\n")
	writeFile(t, filepath.Join(dir, "020_with_dob", "plugin.yaml"), `
name: with_dob
dependencies:
  - with_users
extends:
  - User
`)
	// A folder without a manifest is skipped, not an error.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes"), 0o755))

	registry, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []string{"with_users", "with_dob"}, registry.Names(),
		"numeric prefixes give declaration order")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()

	events := make(chan fsnotify.Event, 8)
	stop, err := Watch(dir, func(e fsnotify.Event) { events <- e })
	require.NoError(t, err)
	defer stop()

	writeFile(t, filepath.Join(dir, "plugin.yaml"), "name: with_users\n")

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no watch event after manifest write")
	}
}

func TestWatch_NilCallback(t *testing.T) {
	_, err := Watch(t.TempDir(), nil)
	assert.Error(t, err)
}
