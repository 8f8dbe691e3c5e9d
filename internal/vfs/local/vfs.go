package local

import (
	"context"
	"os"

	"golang.org/x/sys/unix"

	"gitlab.com/remotefs/remotefs/internal/vfs"
)

const createMode = 0644

// VFS serves the local disk
type VFS struct{}

// Name is used to label metrics and logs
func (localFs VFS) Name() string {
	return "local"
}

// Stat follows symlinks, so a link to a directory is listed like one
func (localFs VFS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir returns the entry names of path in the order the filesystem
// reports them.
func (localFs VFS) ReadDir(ctx context.Context, path string) ([]string, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	if names == nil {
		names = []string{}
	}

	return names, nil
}

func (localFs VFS) Open(ctx context.Context, path string) (vfs.File, error) {
	return os.OpenFile(path, os.O_RDONLY|unix.O_CLOEXEC, 0)
}

// Create opens path for writing, creating it or truncating an existing file.
// The parent directory must exist.
func (localFs VFS) Create(ctx context.Context, path string) (vfs.WriteFile, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|unix.O_CLOEXEC, createMode)
}

// Remove unlinks a file. Directories are rejected by the kernel.
func (localFs VFS) Remove(ctx context.Context, path string) error {
	if err := unix.Unlink(path); err != nil {
		return &os.PathError{Op: "unlink", Path: path, Err: err}
	}

	return nil
}

// RemoveDir removes an empty directory. It never removes contents.
func (localFs VFS) RemoveDir(ctx context.Context, path string) error {
	if err := unix.Rmdir(path); err != nil {
		return &os.PathError{Op: "rmdir", Path: path, Err: err}
	}

	return nil
}
