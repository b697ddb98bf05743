package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logpare/logpare/internal/chunk"
	"github.com/logpare/logpare/internal/session"
)

func newSession(t *testing.T, content string, mode session.Mode, rules ...string) *session.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	sess, err := session.New(path, mode, rules)
	require.NoError(t, err)
	return sess
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunDefaultFilter(t *testing.T) {
	sess := newSession(t, "foo\n\x00bar\n\x00\x00baz\n", session.ModeDefaultFilter)

	res, err := Run(sess, Options{})
	require.NoError(t, err)

	assert.Equal(t, "foo\nbar\nbaz\n", readFile(t, res.Output))
	assert.Equal(t, int64(3), res.BytesRemoved)
	assert.False(t, res.Incomplete)

	// The temp artifact is gone after publication.
	_, statErr := os.Stat(sess.TempPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunRuleFilter(t *testing.T) {
	content := "ERROR one\nok one\nERROR two\nok two\nERROR three\n" +
		"ok three\nERROR four\nok four\nERROR five\nok five\n"
	sess := newSession(t, content, session.ModeRuleFilter, "ERROR")

	res, err := Run(sess, Options{})
	require.NoError(t, err)

	want := "ok one\nok two\nok three\nok four\nok five\n"
	assert.Equal(t, want, readFile(t, res.Output))
	assert.Equal(t, int64(len(content)-len(want)), res.BytesRemoved)
}

func TestRunEmptyInputFatal(t *testing.T) {
	sess := newSession(t, "", session.ModeDefaultFilter)

	_, err := Run(sess, Options{})
	require.ErrorIs(t, err, chunk.ErrEmptyFile)

	// Nothing published, nothing left behind.
	_, statErr := os.Stat(sess.FilteredPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunChainsOntoFilteredFile(t *testing.T) {
	sess := newSession(t, "ERROR one\nok one\nWARN two\nok two\n", session.ModeRuleFilter, "ERROR")

	res, err := Run(sess, Options{})
	require.NoError(t, err)
	assert.Equal(t, sess.Source, res.Input)
	assert.Equal(t, "ok one\nWARN two\nok two\n", readFile(t, res.Output))

	// A second pass in a different mode reads the filtered file, not the
	// original, and overwrites it.
	second, err := session.New(sess.Source, session.ModeRuleFilter, []string{"WARN"})
	require.NoError(t, err)

	res, err = Run(second, Options{})
	require.NoError(t, err)
	assert.Equal(t, second.FilteredPath(), res.Input)
	assert.Equal(t, "ok one\nok two\n", readFile(t, res.Output))
}

func TestRunStaleTempArtifactRemoved(t *testing.T) {
	sess := newSession(t, "keep\n", session.ModeDefaultFilter)
	require.NoError(t, os.WriteFile(sess.TempPath(), []byte("stale"), 0o600))

	res, err := Run(sess, Options{})
	require.NoError(t, err)
	assert.Equal(t, "keep\n", readFile(t, res.Output))
}

func TestRunTempPathDirectoryConflict(t *testing.T) {
	sess := newSession(t, "keep\n", session.ModeDefaultFilter)
	require.NoError(t, os.Mkdir(sess.TempPath(), 0o755))

	_, err := Run(sess, Options{})
	require.ErrorIs(t, err, ErrPathConflict)

	_, statErr := os.Stat(sess.FilteredPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunScanModeRejected(t *testing.T) {
	sess := newSession(t, "a\n", session.ModeScan)
	_, err := Run(sess, Options{})
	require.Error(t, err)
}

func TestRunReportsProgress(t *testing.T) {
	sess := newSession(t, "0123456789\n", session.ModeDefaultFilter)

	var last, total int64
	_, err := Run(sess, Options{
		ChunkSize: 4,
		Progress:  func(c, t int64) { last, total = c, t },
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), last)
	assert.Equal(t, int64(11), total)
}
