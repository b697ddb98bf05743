package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewResolvesSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "hello\n")

	sess, err := New(path, ModeDefaultFilter, nil)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(sess.Source))
	assert.Equal(t, "app.log", filepath.Base(sess.Source))
}

func TestNewMissingSource(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.log"), ModeScan, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewDirectorySource(t *testing.T) {
	_, err := New(t.TempDir(), ModeScan, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewBadRuleBeforeFileCheck(t *testing.T) {
	// Rule compilation happens before the source is even looked at, so a
	// bad pattern wins over a missing file.
	_, err := New(filepath.Join(t.TempDir(), "nope.log"), ModeRuleFilter, []string{"[bad"})
	require.ErrorIs(t, err, ErrBadPattern)
}

func TestDerivedPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "hello\n")

	sess, err := New(path, ModeRuleFilter, []string{"ERROR"})
	require.NoError(t, err)

	base := filepath.Dir(sess.Source)
	assert.Equal(t, filepath.Join(base, "filtered-app.log"), sess.FilteredPath())
	assert.Equal(t, filepath.Join(base, ".filtered-app.log"), sess.TempPath())
	assert.Equal(t, sess.Source+"-filters-used.txt", sess.FiltersFilePath())
	assert.Equal(t, sess.Source+"-size-reductions.txt", sess.SizeLogPath())
}

func TestInputPathChainsToFilteredFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "hello\n")

	sess, err := New(path, ModeDefaultFilter, nil)
	require.NoError(t, err)

	// No filtered file yet: the source is the input.
	assert.Equal(t, sess.Source, sess.InputPath())

	// Once a filtered file exists, it becomes the input.
	filtered := writeFile(t, filepath.Dir(sess.Source), "filtered-app.log", "hello\n")
	assert.Equal(t, filtered, sess.InputPath())
}

func TestFilterTexts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "hello\n")

	sess, err := New(path, ModeDefaultFilter, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default filters"}, sess.FilterTexts())

	sess, err = New(path, ModeRuleFilter, []string{"ERROR", "$ip$"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ERROR", "$ip$"}, sess.FilterTexts())
}
