// Copyright 2026 The Cortex Authors. SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "x.txt")
	exists, err := FileExists(filePath)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(filePath, []byte("1 2 3\n"), 0644))
	exists, err = FileExists(filePath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReplaceTildeInDir(t *testing.T) {
	usr, err := user.Current()
	require.NoError(t, err)

	got, err := ReplaceTildeInDir("~/data/snp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(usr.HomeDir, "data/snp"), got)

	got, err = ReplaceTildeInDir("~")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(usr.HomeDir), got)

	got, err = ReplaceTildeInDir("~" + usr.Username + "/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(usr.HomeDir, "data"), got)

	got, err = ReplaceTildeInDir("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = ReplaceTildeInDir("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	_, err = ReplaceTildeInDir("~no_such_user_for_cortex_tests/x")
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	vars := map[string]string{"data": "/mnt/data"}

	got, err := ResolvePath("$data/snp/x.mat", "", vars)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/data/snp/x.mat", got)

	got, err = ResolvePath("${data}/y.mat", "/ignored", vars)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/data/y.mat", got)

	got, err = ResolvePath("snp/x.mat", "/root/of/data", nil)
	require.NoError(t, err)
	assert.Equal(t, "/root/of/data/snp/x.mat", got)

	got, err = ResolvePath("/abs/x.mat", "/root/of/data", nil)
	require.NoError(t, err)
	assert.Equal(t, "/abs/x.mat", got)

	t.Setenv("CORTEX_FSUTIL_TEST_DIR", "/from/env")
	got, err = ResolvePath("$CORTEX_FSUTIL_TEST_DIR/c.mat", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/env/c.mat", got)

	_, err = ResolvePath("$cortex_undefined_variable/x.mat", "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownVariable))
}
