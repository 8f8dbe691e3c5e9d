package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/remotefs/remotefs/internal/testhelpers"
)

func TestChangeRoot(t *testing.T) {
	dir := testhelpers.TmpDir(t)
	testhelpers.Chdir(t, testhelpers.Getwd(t))

	root, err := changeRoot(dir)
	require.NoError(t, err)
	require.Equal(t, dir, root)
	require.Equal(t, dir, testhelpers.Getwd(t))
}

func TestChangeRootMissingDirectory(t *testing.T) {
	_, err := changeRoot("/this/path/does/not/exist")
	require.ErrorIs(t, err, os.ErrNotExist)
}
