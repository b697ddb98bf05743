package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logpare/logpare/internal/chunk"
	"github.com/logpare/logpare/internal/session"
)

func TestCleanRemovesNullBytes(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	file := writeTempFile(t, dir, "app.log", "foo\n\x00bar\n\x00\x00baz\n")

	var out bytes.Buffer
	require.NoError(t, runClean(newTestCmd(&out), []string{file}))

	assert.Equal(t, "Filtered out 3 bytes.\n", out.String())
	assert.Equal(t, "foo\nbar\nbaz\n",
		readTempFile(t, filepath.Join(dir, "filtered-app.log")))
}

func TestCleanWritesSidecarRecords(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	file := writeTempFile(t, dir, "app.log", "a  b\n")

	var out bytes.Buffer
	require.NoError(t, runClean(newTestCmd(&out), []string{file}))

	sess, err := session.New(file, session.ModeDefaultFilter, nil)
	require.NoError(t, err)

	assert.Equal(t, "Filters used:\nDefault filters\n\n",
		readTempFile(t, sess.FiltersFilePath()))
	assert.Equal(t, "Filtered out 1 bytes.\n",
		readTempFile(t, sess.SizeLogPath()))
}

func TestCleanIsIdempotent(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	file := writeTempFile(t, dir, "app.log", "a  b\r\n\nc\n\n\nd\n")

	var out bytes.Buffer
	require.NoError(t, runClean(newTestCmd(&out), []string{file}))
	first := readTempFile(t, filepath.Join(dir, "filtered-app.log"))

	// The second run reads the filtered file and removes nothing further.
	out.Reset()
	require.NoError(t, runClean(newTestCmd(&out), []string{file}))
	assert.Equal(t, "Filtered out 0 bytes.\n", out.String())
	assert.Equal(t, first, readTempFile(t, filepath.Join(dir, "filtered-app.log")))
}

func TestCleanEmptyFileFatal(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	file := writeTempFile(t, dir, "app.log", "")

	var out bytes.Buffer
	err := runClean(newTestCmd(&out), []string{file})
	require.ErrorIs(t, err, chunk.ErrEmptyFile)
}

func TestCleanMissingFileFatal(t *testing.T) {
	viper.Reset()

	var out bytes.Buffer
	err := runClean(newTestCmd(&out), []string{filepath.Join(t.TempDir(), "nope.log")})
	require.ErrorIs(t, err, session.ErrNotFound)
}
